package k4

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/etnz/cryptotax"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"
)

var details = PersonalDetails{Name: "Åsa Öberg", PersonalNumber: "19800101-1234", PostalCode: "11122", City: "Stockholm"}

var isFiat = cryptotax.NewFiatSet().IsFiat

func event(symbol string, quantity, proceeds, cost int) cryptotax.TaxEvent {
	return cryptotax.TaxEvent{
		Quantity: cryptotax.Q(quantity),
		Symbol:   symbol,
		Proceeds: cryptotax.M(proceeds, Currency),
		Cost:     cryptotax.M(cost, Currency),
	}
}

func TestDecodePersonalDetails(t *testing.T) {
	input := "\xef\xbb\xbf" + `{"namn": "Åsa Öberg", "personnummer": "19800101-1234", "postnummer": "11122", "postort": "Stockholm"}`
	got, err := DecodePersonalDetails(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodePersonalDetails() error = %v", err)
	}
	if got != details {
		t.Errorf("DecodePersonalDetails() = %+v, want %+v", got, details)
	}
	if got, want := got.Identity(), "198001011234"; got != want {
		t.Errorf("Identity() = %q, want %q", got, want)
	}

	if _, err := DecodePersonalDetails(strings.NewReader(`{"namn": "Åsa"}`)); err == nil {
		t.Error("DecodePersonalDetails() with missing fields: error = nil")
	}
}

func TestDecodeStockEvents(t *testing.T) {
	input := `{"trades": [{"amount": 10, "name": "ACME", "income": 1500, "costbase": 1000.5}]}`
	got, err := DecodeStockEvents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeStockEvents() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("DecodeStockEvents() returned %d events, want 1", len(got))
	}
	e := got[0]
	if e.Symbol != "ACME" || !e.Quantity.Equal(cryptotax.Q(10)) {
		t.Errorf("event = %v %v, want 10 ACME", e.Quantity, e.Symbol)
	}
	if want := cryptotax.M(499.5, Currency); !e.Gain().Equal(want) {
		t.Errorf("Gain() = %v, want %v", e.Gain(), want)
	}
}

func TestNewPages(t *testing.T) {
	var events []cryptotax.TaxEvent
	for i := range 8 {
		events = append(events, event(fmt.Sprintf("C%d", i), 1, 100+i, 100))
	}
	events = append(events, event("EUR", 1000, 11000, 11500))

	pages := NewPages(2024, details, events, nil, isFiat)
	if len(pages) != 2 {
		t.Fatalf("NewPages() returned %d pages, want 2", len(pages))
	}
	if pages[0].Number != 1 || pages[1].Number != 2 {
		t.Errorf("page numbers = %d, %d, want 1, 2", pages[0].Number, pages[1].Number)
	}
	if _, ok := pages[0].Section(SectionA); ok {
		t.Error("page 1 has a section A without stocks")
	}

	c, ok := pages[0].Section(SectionC)
	if !ok {
		t.Fatal("page 1 has no section C")
	}
	wantC := Section{
		Name:  SectionC,
		Lines: []Line{{"1000", "EUR", "11000", "11500", "", "500"}},
		Sums:  [4]string{"11000", "11500", "", "500"},
	}
	if diff := cmp.Diff(wantC, c); diff != "" {
		t.Errorf("section C mismatch (-want +got):\n%s", diff)
	}

	d, _ := pages[0].Section(SectionD)
	if len(d.Lines) != 7 {
		t.Errorf("page 1 section D has %d lines, want 7", len(d.Lines))
	}
	// C0 breaks even: no profit and no loss.
	if got, want := d.Lines[0], (Line{"1", "C0", "100", "100", "", ""}); got != want {
		t.Errorf("first line = %q, want %q", got, want)
	}
	if got, want := d.Sums, [4]string{"721", "700", "21", ""}; got != want {
		t.Errorf("section D sums = %q, want %q", got, want)
	}

	d2, _ := pages[1].Section(SectionD)
	if len(d2.Lines) != 1 || d2.Lines[0][1] != "C7" {
		t.Errorf("page 2 section D = %v, want the single C7 line", d2.Lines)
	}
	if _, ok := pages[1].Section(SectionC); ok {
		t.Error("page 2 has a section C")
	}
}

func TestNewPages_Stocks(t *testing.T) {
	var stocks []cryptotax.TaxEvent
	for i := range 10 {
		stocks = append(stocks, event(fmt.Sprintf("S%d", i), 1, 10, 20))
	}
	pages := NewPages(2024, details, nil, stocks, isFiat)
	if len(pages) != 2 {
		t.Fatalf("NewPages() returned %d pages, want 2", len(pages))
	}
	a, _ := pages[0].Section(SectionA)
	if len(a.Lines) != 9 {
		t.Errorf("section A has %d lines, want 9", len(a.Lines))
	}
	if got, want := a.Sums, [4]string{"90", "180", "", "90"}; got != want {
		t.Errorf("section A sums = %q, want %q", got, want)
	}
}

func TestNewPages_Empty(t *testing.T) {
	if pages := NewPages(2024, details, nil, nil, isFiat); len(pages) != 0 {
		t.Errorf("NewPages() returned %d pages, want none", len(pages))
	}
}

func decode(t *testing.T, data []byte) string {
	t.Helper()
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		t.Fatalf("not ISO-8859-1: %v", err)
	}
	return string(text)
}

func TestEncodeInfo(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeInfo(&buf, details); err != nil {
		t.Fatalf("EncodeInfo() error = %v", err)
	}
	// Å is a single byte in ISO-8859-1.
	if !bytes.Contains(buf.Bytes(), []byte("#NAMN \xc5sa \xd6berg\n")) {
		t.Errorf("EncodeInfo() is not ISO-8859-1 encoded: %q", buf.Bytes())
	}
	want := `#DATABESKRIVNING_START
#PRODUKT SRU
#FILNAMN BLANKETTER.SRU
#DATABESKRIVNING_SLUT
#MEDIELEV_START
#ORGNR 19800101-1234
#NAMN Åsa Öberg
#POSTNR 11122
#POSTORT Stockholm
#MEDIELEV_SLUT
`
	if diff := cmp.Diff(want, decode(t, buf.Bytes())); diff != "" {
		t.Errorf("EncodeInfo() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeBlanketter(t *testing.T) {
	events := []cryptotax.TaxEvent{
		event("BTC", 2, 500, 300),
		event("ETH", 3, 100, 400),
		event("USD", 10, 100, 90),
	}
	stocks := []cryptotax.TaxEvent{event("ACME", 5, 50, 40)}
	pages := NewPages(2024, details, events, stocks, isFiat)
	now := time.Date(2025, 3, 1, 14, 5, 9, 0, time.UTC)

	var buf bytes.Buffer
	if err := EncodeBlanketter(&buf, pages, now); err != nil {
		t.Fatalf("EncodeBlanketter() error = %v", err)
	}
	want := `#BLANKETT K4-2024P4
#IDENTITET 198001011234 20250301 140509
#NAMN Åsa Öberg
#UPPGIFT 7014 1
#UPPGIFT 3100 5
#UPPGIFT 3101 ACME
#UPPGIFT 3102 50
#UPPGIFT 3103 40
#UPPGIFT 3104 10
#UPPGIFT 3300 50
#UPPGIFT 3301 40
#UPPGIFT 3304 10
#UPPGIFT 3310 10
#UPPGIFT 3311 USD
#UPPGIFT 3312 100
#UPPGIFT 3313 90
#UPPGIFT 3314 10
#UPPGIFT 3400 100
#UPPGIFT 3401 90
#UPPGIFT 3403 10
#UPPGIFT 3410 2
#UPPGIFT 3411 BTC
#UPPGIFT 3412 500
#UPPGIFT 3413 300
#UPPGIFT 3414 200
#UPPGIFT 3420 3
#UPPGIFT 3421 ETH
#UPPGIFT 3422 100
#UPPGIFT 3423 400
#UPPGIFT 3425 300
#UPPGIFT 3500 600
#UPPGIFT 3501 700
#UPPGIFT 3503 200
#UPPGIFT 3504 300
#BLANKETTSLUT
#FIL_SLUT
`
	if diff := cmp.Diff(want, decode(t, buf.Bytes())); diff != "" {
		t.Errorf("EncodeBlanketter() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeInfo_Unencodable(t *testing.T) {
	d := details
	d.Name = "Åsa 🙂"
	if err := EncodeInfo(new(bytes.Buffer), d); err == nil {
		t.Error("EncodeInfo() error = nil, want an encoding error")
	}
}

func TestNewTotals(t *testing.T) {
	events := []cryptotax.TaxEvent{
		event("BTC", 2, 500, 300),
		event("ETH", 3, 100, 400),
		event("USD", 10, 100, 90),
	}
	got := NewTotals(events, nil, isFiat)
	if len(got) != 2 {
		t.Fatalf("NewTotals() returned %d sections, want 2", len(got))
	}
	want := Totals{
		{Section: SectionC, Profit: cryptotax.M(10, Currency), Loss: cryptotax.M(0, Currency), ProfitBox: "7.2", LossBox: "8.1"},
		{Section: SectionD, Profit: cryptotax.M(200, Currency), Loss: cryptotax.M(300, Currency), ProfitBox: "7.5", LossBox: "8.4"},
	}
	money := cmp.Comparer(func(a, b cryptotax.Money) bool { return a.Equal(b) })
	if diff := cmp.Diff(want, got, money); diff != "" {
		t.Errorf("NewTotals() mismatch (-want +got):\n%s", diff)
	}

	withStocks := NewTotals(events, []cryptotax.TaxEvent{event("ACME", 1, 10, 20)}, isFiat)
	if len(withStocks) != 3 || withStocks[0].Section != SectionA || !withStocks[0].Loss.Equal(cryptotax.M(10, Currency)) {
		t.Errorf("NewTotals() with stocks = %+v, want a section A with a 10 loss", withStocks)
	}
}
