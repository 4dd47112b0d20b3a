package ui_config

type Config struct { //nolint:maligned
	MsgIntro string `hcl:"msg_intro"`
	Prompt   string `hcl:"prompt"`

	Service struct {
		Enable bool `hcl:"enable"`
		Auth   struct {
			Enable     bool     `hcl:"enable"`
			Passwords  []string `hcl:"passwords"`
			SecretSalt string   `hcl:"secret_salt"`
		} `hcl:"auth"`
		// send inventory report when service session ends with catalog changes
		ReportOnEnd bool `hcl:"report_on_end"`
	} `hcl:"service"`
}
