package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/tagespoet/tagespoet/store"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func openStore() (*store.SQLiteStore, error) {
	cfg := GetConfig()
	s, err := store.NewSQLiteStore(cfg.Data.Dir, cfg.Data.Database)
	if err != nil {
		return nil, fmt.Errorf("open poem store: %w", err)
	}
	return s, nil
}
