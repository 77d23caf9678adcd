package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

const tradesHeader = `"Type","Buy","Cur.","Value in SEK","Sell","Cur.","Value in SEK","Fee","Cur.","Exchange","Group","Comment","Date"` + "\n"

// tradesCSV sells 1 of 2 BTC bought for 300000 SEK, for 200000 SEK.
const tradesCSV = tradesHeader +
	`"Trade","200000","SEK","200000","1","BTC","200000","-","-","Kraken","-","","01.06.2024 10:00"` + "\n" +
	`"Trade","2","BTC","300000","300000","SEK","300000","-","-","Kraken","-","","01.02.2023 10:00"` + "\n"

const detailsJSON = `{"namn": "Åsa Öberg", "personnummer": "19800101-1234", "postnummer": "11122", "postort": "Stockholm"}`

// writeTemp writes content to name in dir and returns its path.
func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create folder: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

// setupWorkspace writes the input files and a config file pointing to them
// in a temporary folder, and makes it the global config file.
func setupWorkspace(t *testing.T, trades string) string {
	t.Helper()
	dir := t.TempDir()
	writeTemp(t, dir, "data/trades.csv", trades)
	writeTemp(t, dir, "data/personal_details.json", detailsJSON)
	config := writeTemp(t, dir, "k4tax.yaml", `
native_currency: SEK
value_currency: SEK
trades: ${K4TAX_TEST_DIR}/data/trades.csv
personal_details: ${K4TAX_TEST_DIR}/data/personal_details.json
stocks: ${K4TAX_TEST_DIR}/data/stocks.json
out: ${K4TAX_TEST_DIR}/out
`)
	t.Setenv("K4TAX_TEST_DIR", dir)

	oldConfig, oldRaw := configFile, raw
	rawOutput := true
	configFile, raw = &config, &rawOutput
	t.Cleanup(func() { configFile, raw = oldConfig, oldRaw })
	return dir
}
