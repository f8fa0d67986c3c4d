package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/workorders/internal/config"
)

// isolate points the config directory at a temp dir and resets viper.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	appconfig.SetDefaults()
	return dir
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    any
		wantErr string
	}{
		{key: "api.base_url", value: "https://orders.example.com", want: "https://orders.example.com"},
		{key: "api.base_url", value: "orders.example.com", wantErr: "absolute"},
		{key: "host.present", value: "true", want: true},
		{key: "host.present", value: "yes", wantErr: "true or false"},
		{key: "launch.url", value: "?debug_user_id=42", want: "?debug_user_id=42"},
		{key: "launch.url", value: "?order_id=%zz", wantErr: "launch.url"},
		{key: "tui.theme", value: "nord", want: "nord"},
		{key: "tui.theme", value: "neon", wantErr: "tui.theme"},
		{key: "tui.locale_time_format", value: "2006-01-02", want: "2006-01-02"},
		{key: "logging.level", value: "WARN", want: "warn"},
		{key: "logging.level", value: "loud", wantErr: "Valid options"},
		{key: "session.max_instances", value: "3", wantErr: "unknown configuration key"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := parseValue(tt.key, tt.value)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("parseValue() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("parseValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunConfigSet(t *testing.T) {
	isolate(t)
	out := capture(t, configSetCmd)

	if err := runConfigSet(configSetCmd, []string{"host.init_data", "user=secret&hash=1"}); err != nil {
		t.Fatalf("runConfigSet() error = %v", err)
	}
	if strings.Contains(out.String(), "secret") {
		t.Errorf("set echoed the init data: %s", out)
	}

	data, err := os.ReadFile(appconfig.ConfigFile())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "user=secret") {
		t.Errorf("config file:\n%s", data)
	}
}

func TestRunConfigInit(t *testing.T) {
	isolate(t)
	capture(t, configInitCmd)

	if err := runConfigInit(configInitCmd, nil); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}

	// The template must load and validate as-is.
	viper.SetConfigFile(appconfig.ConfigFile())
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	cfg, err := appconfig.Load()
	if err != nil {
		t.Fatalf("template does not validate: %v", err)
	}
	if *cfg != *appconfig.Default() {
		t.Errorf("template differs from defaults:\n got %+v\nwant %+v", cfg, appconfig.Default())
	}

	if err := runConfigInit(configInitCmd, nil); err == nil {
		t.Error("second init should refuse to overwrite")
	}
}

func TestRunConfigReset(t *testing.T) {
	isolate(t)
	capture(t, configSetCmd)
	out := capture(t, configResetCmd)

	if err := runConfigSet(configSetCmd, []string{"tui.theme", "nord"}); err != nil {
		t.Fatal(err)
	}
	if err := runConfigReset(configResetCmd, []string{"tui.theme"}); err != nil {
		t.Fatalf("runConfigReset() error = %v", err)
	}
	if got := viper.GetString("tui.theme"); got != "default" {
		t.Errorf("tui.theme = %q after reset", got)
	}
	if !strings.Contains(out.String(), "Reset tui.theme to default: default") {
		t.Errorf("reset output: %s", out)
	}

	if err := runConfigReset(configResetCmd, []string{"nope"}); err == nil {
		t.Error("reset of an unknown key should fail")
	}
}

func TestRunConfigShow(t *testing.T) {
	isolate(t)
	out := capture(t, configShowCmd)
	viper.Set("launch.debug_user_id", "42")

	if err := runConfigShow(configShowCmd, nil); err != nil {
		t.Fatalf("runConfigShow() error = %v", err)
	}
	for _, want := range []string{"(none - using defaults)", "launch.debug_user_id = 42", "tui.theme = default"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}
}

func TestDefaultValuesCoverSettableKeys(t *testing.T) {
	defaults := defaultValues()
	for key := range settableKeys {
		if _, ok := defaults[key]; !ok {
			t.Errorf("%s has no default to reset to", key)
		}
	}
}
