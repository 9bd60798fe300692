package app

import (
	"fmt"
	"os"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/matchday-sync/internal/domain/league"
)

// catalogFile is the on-disk shape of a league catalog override.
type catalogFile struct {
	Leagues  []league.League `json:"leagues"`
	Priority []int64         `json:"priority"`
}

// loadCatalog returns the built-in catalog unless path names an override file.
func loadCatalog(path string) (league.Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return league.DefaultCatalog(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return league.Catalog{}, fmt.Errorf("read league catalog %s: %w", path, err)
	}
	return parseCatalog(raw)
}

func parseCatalog(raw []byte) (league.Catalog, error) {
	var file catalogFile
	if err := sonic.Unmarshal(raw, &file); err != nil {
		return league.Catalog{}, fmt.Errorf("decode league catalog: %w", err)
	}
	if len(file.Leagues) == 0 {
		return league.Catalog{}, fmt.Errorf("league catalog has no leagues")
	}
	catalog, err := league.NewCatalog(file.Leagues, file.Priority)
	if err != nil {
		return league.Catalog{}, fmt.Errorf("build league catalog: %w", err)
	}
	return catalog, nil
}
