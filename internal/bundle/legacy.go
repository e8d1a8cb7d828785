package bundle

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// AdaptLegacy rewrites a legacy-named document into the current shape:
// the "swarms" and "flocks" arrays trade places, single "parametersId"
// references on their entries become one-element "parametersIds" lists,
// and the version is stamped current. Field types are left for the decoder.
func AdaptLegacy(raw string) (string, error) {
	oldSwarms := gjson.Get(raw, "swarms")
	oldFlocks := gjson.Get(raw, "flocks")

	out, err := setOrDelete(raw, "flocks", oldSwarms)
	if err != nil {
		return "", err
	}
	out, err = setOrDelete(out, "swarms", oldFlocks)
	if err != nil {
		return "", err
	}

	for _, array := range []string{"flocks", "swarms"} {
		out, err = liftParametersID(out, array)
		if err != nil {
			return "", err
		}
	}

	out, err = sjson.Set(out, "version", CurrentVersion)
	if err != nil {
		return "", fmt.Errorf("stamping version: %w", err)
	}
	return out, nil
}

func setOrDelete(raw, path string, value gjson.Result) (string, error) {
	if !value.Exists() {
		out, err := sjson.Delete(raw, path)
		if err != nil {
			return "", fmt.Errorf("removing %s: %w", path, err)
		}
		return out, nil
	}
	out, err := sjson.SetRaw(raw, path, value.Raw)
	if err != nil {
		return "", fmt.Errorf("moving %s: %w", path, err)
	}
	return out, nil
}

// liftParametersID converts "parametersId" into "parametersIds" on every entry of array
func liftParametersID(raw, array string) (string, error) {
	entries := gjson.Get(raw, array)
	if !entries.IsArray() {
		return raw, nil
	}

	out := raw
	var err error
	for i, entry := range entries.Array() {
		single := entry.Get("parametersId")
		if !single.Exists() {
			continue
		}
		base := fmt.Sprintf("%s.%d", array, i)
		if !entry.Get("parametersIds").Exists() && single.Type == gjson.String && single.Str != "" {
			out, err = sjson.Set(out, base+".parametersIds", []string{single.Str})
			if err != nil {
				return "", fmt.Errorf("lifting %s parametersId: %w", base, err)
			}
		}
		out, err = sjson.Delete(out, base+".parametersId")
		if err != nil {
			return "", fmt.Errorf("removing %s parametersId: %w", base, err)
		}
	}
	return out, nil
}
