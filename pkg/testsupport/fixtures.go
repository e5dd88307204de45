package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGolden decodes a JSON fixture into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
