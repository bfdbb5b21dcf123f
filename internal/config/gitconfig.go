package config

import (
	"fmt"
	"os/exec"
	"strings"
)

// keyPrefix namespaces lazyscm keys in git config and overrides.
const keyPrefix = "lazyscm."

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config command and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config returns exit code 1 when key not found (not an error)
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses git config output into multi-value map.
// Input format: "lazyscm.clone_dir /src\nlazyscm.confirm_sync false\n"
func parseGitConfigOutput(output string) (map[string][]string, error) {
	configMap := make(map[string][]string)
	if output == "" {
		return configMap, nil
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")

	for _, line := range lines {
		if line == "" {
			continue
		}

		// SplitN keeps values containing spaces intact.
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], keyPrefix)
		value := parts[1]

		// Git config can have multi-values for same key
		configMap[key] = append(configMap[key], value)
	}

	return configMap, nil
}

// convertGitConfigToParseConfig converts to format expected by parseConfig().
func convertGitConfigToParseConfig(gitCfg map[string][]string) map[string]any {
	result := make(map[string]any)

	for key, values := range gitCfg {
		if len(values) == 0 {
			continue
		}

		// Repeated keys become []any like YAML lists.
		if len(values) > 1 {
			anySlice := make([]any, len(values))
			for i, v := range values {
				anySlice[i] = v
			}
			result[key] = anySlice
			continue
		}

		// Single value - keep as string, coerceBool/coerceInt will handle conversion
		result[key] = values[0]
	}

	return result
}

// loadGitConfig reads git config values and returns map for parseConfig.
func loadGitConfig(globalOnly bool, repoPath string) (map[string]any, error) {
	args := []string{"config", "--get-regexp", "^lazyscm\\."}

	if globalOnly {
		args = append(args, "--global")
	} else {
		args = append(args, "--local")
	}

	output, err := runGitConfig(args, repoPath)
	if err != nil {
		return nil, err
	}

	if output == "" {
		return make(map[string]any), nil
	}

	gitCfg, err := parseGitConfigOutput(output)
	if err != nil {
		return nil, err
	}

	return convertGitConfigToParseConfig(gitCfg), nil
}

// parseCLIConfigOverrides parses --config=lazyscm.key=value format.
// Returns a map suitable for parseConfig().
func parseCLIConfigOverrides(overrides []string) (map[string]any, error) {
	result := make(map[string]any)
	keyCount := make(map[string]int)

	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config override: %q, expected format: lazyscm.key=value (note: use = not space)", override)
		}

		fullKey := parts[0]
		value := parts[1]

		if !strings.HasPrefix(fullKey, keyPrefix) {
			return nil, fmt.Errorf("config override key must start with '%s': %q", keyPrefix, fullKey)
		}

		key := strings.TrimPrefix(fullKey, keyPrefix)
		if key == "" {
			return nil, fmt.Errorf("empty config key in override: %q", override)
		}

		keyCount[key]++
		if keyCount[key] > 1 {
			// Convert to array on second occurrence
			if keyCount[key] == 2 {
				firstValue := result[key].(string)
				result[key] = []any{firstValue, value}
			} else {
				result[key] = append(result[key].([]any), value)
			}
		} else {
			result[key] = value
		}
	}

	return result, nil
}
