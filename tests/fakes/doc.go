// Package fakes provides test doubles for gwconfig's external collaborators.
//
// This package contains fake implementations of the SSM client, the
// parameter store, the operator console and the script runner so the
// workflows and commands can be tested without AWS, a terminal, or a real
// update script. Fakes are manually implemented (not generated) to provide
// precise control over test behavior.
//
// Usage:
//
//	st := fakes.NewMemoryStore()
//	st.Set("/IB_Gateway/TWS_PASSWORD", "secret123")
//	con := fakes.NewScriptedConsole("yes", "new-secret")
//	editor := workflow.NewEditor(cat, st, con, logger)
//	// Test editor behavior...
package fakes
