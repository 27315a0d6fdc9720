package session

import "strings"

// disableRestoreEnv short-circuits restore when set to anything non-empty.
const disableRestoreEnv = "WORKDECK_DISABLE_SESSION_RESTORE"

// harnessEnvVars are set by automated test harnesses driving the app. A
// harness owns its own window state and must not inherit a restored
// session; any one signal is sufficient.
var harnessEnvVars = []string{
	"WORKDECK_UI_TEST_MODE",
	"WORKDECK_HARNESS_SOCKET",
	"WORKDECK_AUTOMATION",
}

// processSerialPrefix matches the argument the platform launcher injects on
// its own (e.g. "-psn_0_12345"); it carries no user intent.
const processSerialPrefix = "-psn_"

// ShouldRestore decides whether a restore attempt should happen at all for
// this launch. args is os.Args[1:]; getenv is os.Getenv in production. Any
// launch argument beyond a process serial number signals a deliberate,
// non-default launch that a restored session must not override.
func ShouldRestore(args []string, getenv func(string) string) bool {
	if getenv(disableRestoreEnv) != "" {
		return false
	}
	for _, v := range harnessEnvVars {
		if getenv(v) != "" {
			return false
		}
	}
	for _, arg := range args {
		if !strings.HasPrefix(arg, processSerialPrefix) {
			return false
		}
	}
	return true
}
