package workflow_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systmms/gwconfig/internal/catalog"
	"github.com/systmms/gwconfig/internal/logging"
	"github.com/systmms/gwconfig/internal/workflow"
	"github.com/systmms/gwconfig/tests/fakes"
)

func TestEditor_MasksSensitiveCurrentValue(t *testing.T) {
	st := fakes.NewMemoryStore()
	st.Set("/IB_Gateway/TWS_PASSWORD", "secret123")
	con := fakes.NewScriptedConsole("no")

	changed, err := workflow.NewEditor(smallCatalog(t), st, con, logging.New(nil, false), nil).
		Edit(context.Background(), []string{"/IB_Gateway/TWS_PASSWORD"}, catalog.Main)
	require.NoError(t, err)
	assert.False(t, changed)

	require.Len(t, con.Prompts, 1)
	assert.Equal(t, "/IB_Gateway/TWS_PASSWORD (Main)\n"+
		"Description: The TWS password.\n"+
		"Current value: *********\n"+
		"Would you like to change it? (yes/no): ", con.Prompts[0])
	assert.NotContains(t, con.Transcript(), "secret123")
	assert.Empty(t, st.Writes)
}

func TestEditor_ShowsCleartextAndDefault(t *testing.T) {
	st := fakes.NewMemoryStore()
	st.Set("/IB_Gateway/TRADING_MODE", "paper")
	con := fakes.NewScriptedConsole("no")

	_, err := workflow.NewEditor(smallCatalog(t), st, con, logging.New(nil, false), nil).
		Edit(context.Background(), []string{"/IB_Gateway/TRADING_MODE"}, catalog.Main)
	require.NoError(t, err)

	assert.Contains(t, con.Prompts[0], "Default: paper\n")
	assert.Contains(t, con.Prompts[0], "Current value: paper\n")
}

func TestEditor_ChangeExisting(t *testing.T) {
	st := fakes.NewMemoryStore()
	st.Set("/IB_Gateway/TWS_USERID", "olduser")
	con := fakes.NewScriptedConsole("YES", "newuser")
	var logBuf bytes.Buffer

	changed, err := workflow.NewEditor(smallCatalog(t), st, con, logging.New(&logBuf, false), nil).
		Edit(context.Background(), []string{"/IB_Gateway/TWS_USERID"}, catalog.Main)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, []fakes.Write{{Name: "/IB_Gateway/TWS_USERID", Value: "newuser"}}, st.Writes)
	assert.Equal(t, "Enter new value: ", con.Prompts[1])
	assert.Contains(t, con.Said, "Parameter /IB_Gateway/TWS_USERID updated.")
	assert.Contains(t, logBuf.String(), "Parameter /IB_Gateway/TWS_USERID updated")
}

func TestEditor_OnlyExactYesChanges(t *testing.T) {
	for _, answer := range []string{"y", "Y", "no", "", "yes!", "sure"} {
		t.Run(answer, func(t *testing.T) {
			st := fakes.NewMemoryStore()
			st.Set("/IB_Gateway/TWS_USERID", "olduser")
			con := fakes.NewScriptedConsole(answer, "newuser")

			changed, err := workflow.NewEditor(smallCatalog(t), st, con, logging.New(nil, false), nil).
				Edit(context.Background(), []string{"/IB_Gateway/TWS_USERID"}, catalog.Main)
			require.NoError(t, err)

			assert.False(t, changed)
			assert.Empty(t, st.Writes)
			assert.Equal(t, 1, con.Remaining(), "replacement value must not be asked for")
		})
	}
}

func TestEditor_EmptyInputNeverWrites(t *testing.T) {
	tests := []struct {
		name    string
		seed    bool
		answers []string
	}{
		{name: "existing value, empty replacement", seed: true, answers: []string{"yes", ""}},
		{name: "no current value, empty answer", seed: false, answers: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := fakes.NewMemoryStore()
			if tt.seed {
				st.Set("/IB_Gateway/TWS_USERID", "olduser")
			}
			con := fakes.NewScriptedConsole(tt.answers...)

			changed, err := workflow.NewEditor(smallCatalog(t), st, con, logging.New(nil, false), nil).
				Edit(context.Background(), []string{"/IB_Gateway/TWS_USERID"}, catalog.Main)
			require.NoError(t, err)

			assert.False(t, changed)
			assert.Empty(t, st.Writes)
		})
	}
}

func TestEditor_CreateMissing(t *testing.T) {
	st := fakes.NewMemoryStore()
	con := fakes.NewScriptedConsole("trader1", "")

	changed, err := workflow.NewEditor(smallCatalog(t), st, con, logging.New(nil, false), nil).
		Edit(context.Background(), []string{"/IB_Gateway/TWS_USERID", "/IB_Gateway/TWS_PASSWORD"}, catalog.Main)
	require.NoError(t, err)
	assert.True(t, changed, "any change in the batch counts")

	assert.Equal(t, []fakes.Write{{Name: "/IB_Gateway/TWS_USERID", Value: "trader1"}}, st.Writes)
	assert.Equal(t, "/IB_Gateway/TWS_USERID (Main)\n"+
		"Description: The TWS username.\n"+
		"Enter value: ", con.Prompts[0])
	assert.NotContains(t, con.Prompts[0], "Current value")
	assert.Contains(t, con.Said, "Parameter /IB_Gateway/TWS_USERID created.")
}

func TestEditor_UnknownName(t *testing.T) {
	_, err := workflow.NewEditor(smallCatalog(t), fakes.NewMemoryStore(), fakes.NewScriptedConsole(), logging.New(nil, false), nil).
		Edit(context.Background(), []string{"/IB_Gateway/NOPE"}, catalog.Advanced)
	assert.Error(t, err)
}

func TestEditor_StoreErrorsPropagate(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		st := fakes.NewMemoryStore()
		st.FetchErrors["/IB_Gateway/TWS_USERID"] = errors.New("throttled")

		_, err := workflow.NewEditor(smallCatalog(t), st, fakes.NewScriptedConsole(), logging.New(nil, false), nil).
			Edit(context.Background(), []string{"/IB_Gateway/TWS_USERID"}, catalog.Main)
		assert.EqualError(t, err, "throttled")
	})

	t.Run("put", func(t *testing.T) {
		st := fakes.NewMemoryStore()
		st.PutErrors["/IB_Gateway/TWS_USERID"] = errors.New("access denied")

		changed, err := workflow.NewEditor(smallCatalog(t), st, fakes.NewScriptedConsole("trader1"), logging.New(nil, false), nil).
			Edit(context.Background(), []string{"/IB_Gateway/TWS_USERID"}, catalog.Main)
		assert.EqualError(t, err, "access denied")
		assert.False(t, changed)
	})
}
