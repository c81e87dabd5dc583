package models

// DiscordConfig represents Discord service configuration
type DiscordConfig struct {
	Token         string `json:"token"`
	CommandPrefix string `json:"command_prefix"`
	Enabled       bool   `json:"enabled"`
}

// DiscordUser represents a Discord user
type DiscordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

// DiscordStatus represents Discord service status
type DiscordStatus struct {
	Enabled       bool         `json:"enabled"`
	State         string       `json:"status"`
	CommandPrefix string       `json:"command_prefix"`
	Uptime        string       `json:"uptime"`
	User          *DiscordUser `json:"user,omitempty"`
	Guilds        int          `json:"guilds,omitempty"`
	Note          string       `json:"note,omitempty"`
}
