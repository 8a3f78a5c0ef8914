package catalog

func str(s string) *string { return &s }

// gatewayParameters is the built-in parameter set, keyed by short name
var gatewayParameters = []struct {
	name        string
	category    Category
	description string
	def         *string
}{
	{"TWS_USERID", Main, "The TWS username.", nil},
	{"TWS_PASSWORD", Main, "The TWS password.", nil},
	{"TRADING_MODE", Main, "Options: live, paper, or both. Default: paper", str("paper")},
	{"VNC_SERVER_PASSWORD", Main, "VNC server password. If not defined, VNC server will NOT start.", nil},
	{"JUPYTER_TOKEN", Main, "Token for Jupyter notebook access.", nil},
	{"TWS_SETTINGS_PATH", Advanced, "Settings path used by IBC's parameter --tws_settings_path.", nil},
	{"TWS_ACCEPT_INCOMING", Advanced, "Options: accept, reject, manual. Default: manual", str("manual")},
	{"READ_ONLY_API", Advanced, "Options: yes or no.", nil},
	{"TWOFA_TIMEOUT_ACTION", Advanced, "Options: exit or restart. Default: exit", str("exit")},
	{"BYPASS_WARNING", Advanced, "Options: yes or no.", nil},
	{"AUTO_RESTART_TIME", Advanced, "Time to restart IB Gateway. Format: hh:mm AM/PM", nil},
	{"AUTO_LOGOFF_TIME", Advanced, "Auto-Logoff time. Format: hh:mm", nil},
	{"TWS_COLD_RESTART", Advanced, "Cold restart time. Format: hh:mm", nil},
	{"SAVE_TWS_SETTINGS", Advanced, "Times to save TWS settings. Format: hh:mm hh:mm ...", nil},
	{"RELOGIN_AFTER_TWOFA_TIMEOUT", Advanced, "Options: yes or no. Default: no", str("no")},
	{"TWOFA_EXIT_INTERVAL", Advanced, "Time interval for 2FA exit.", nil},
	{"TWOFA_DEVICE", Advanced, "Second factor authentication device.", nil},
	{"EXISTING_SESSION_DETECTED_ACTION", Advanced, "Options: primary, secondary, manual. Default: primary", str("primary")},
	{"ALLOW_BLIND_TRADING", Advanced, "Options: yes or no. Default: no", str("no")},
	{"TIME_ZONE", Advanced, "Time zone for IB Gateway. Default: Etc/UTC", str("Etc/UTC")},
	{"CUSTOM_CONFIG", Advanced, "Options: yes or no. Default: no", str("no")},
	{"JAVA_HEAP_SIZE", Advanced, "Java heap size in MB. Default: 768", nil},
	{"SSH_TUNNEL", Advanced, "Options: yes, no, or both.", nil},
	{"SSH_OPTIONS", Advanced, "Additional options for SSH client.", nil},
	{"SSH_ALIVE_INTERVAL", Advanced, "SSH ServerAliveInterval setting. Default: 20", str("20")},
	{"SSH_ALIVE_COUNT", Advanced, "SSH ServerAliveCountMax setting.", nil},
	{"SSH_PASSPHRASE", Advanced, "Passphrase for SSH keys.", nil},
	{"SSH_REMOTE_PORT", Advanced, "Remote port for SSH tunnel.", nil},
	{"SSH_USER_TUNNEL", Advanced, "user@server to connect to for SSH tunnel.", nil},
	{"SSH_RESTART", Advanced, "Seconds to wait before restarting SSH tunnel. Default: 5", str("5")},
	{"SSH_VNC_PORT", Advanced, "Remote port for VNC SSH tunnel.", nil},
}

// NewGateway returns a catalog populated with the built-in IB Gateway
// parameters under namespace.
func NewGateway(namespace string) *Catalog {
	c := New(namespace)
	for _, p := range gatewayParameters {
		// names are unique, Add cannot fail here
		_ = c.Add(Definition{
			Name:        c.FullName(p.name),
			Category:    p.category,
			Description: p.description,
			Default:     p.def,
		})
	}
	return c
}
