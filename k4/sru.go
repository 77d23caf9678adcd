package k4

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	// InfoFile is the name of the SRU file describing the sender.
	InfoFile = "INFO.SRU"
	// BlanketterFile is the name of the SRU file holding the forms.
	BlanketterFile = "BLANKETTER.SRU"
)

// pageNumberCode is the SRU code of the page number field.
const pageNumberCode = 7014

// sruWriter writes SRU records in ISO-8859-1 and keeps the first error.
type sruWriter struct {
	enc *transform.Writer
	w   *bufio.Writer
	err error
}

func newSRUWriter(w io.Writer) *sruWriter {
	enc := transform.NewWriter(w, charmap.ISO8859_1.NewEncoder())
	return &sruWriter{enc: enc, w: bufio.NewWriter(enc)}
}

func (s *sruWriter) record(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format+"\n", args...)
}

func (s *sruWriter) close() error {
	if s.err != nil {
		return fmt.Errorf("cannot write SRU: %w", s.err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("cannot write SRU: %w", err)
	}
	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("cannot write SRU: %w", err)
	}
	return nil
}

// EncodeInfo writes the INFO.SRU file for the sender.
func EncodeInfo(w io.Writer, details PersonalDetails) error {
	s := newSRUWriter(w)
	s.record("#DATABESKRIVNING_START")
	s.record("#PRODUKT SRU")
	s.record("#FILNAMN %s", BlanketterFile)
	s.record("#DATABESKRIVNING_SLUT")
	s.record("#MEDIELEV_START")
	s.record("#ORGNR %s", details.PersonalNumber)
	s.record("#NAMN %s", details.Name)
	s.record("#POSTNR %s", details.PostalCode)
	s.record("#POSTORT %s", details.City)
	s.record("#MEDIELEV_SLUT")
	return s.close()
}

// EncodeBlanketter writes the BLANKETTER.SRU file with one form per page,
// now is the generation time.
func EncodeBlanketter(w io.Writer, pages []Page, now time.Time) error {
	s := newSRUWriter(w)
	for _, p := range pages {
		s.record("#BLANKETT K4-%dP4", p.Year)
		s.record("#IDENTITET %s %s", p.Details.Identity(), now.Format("20060102 150405"))
		s.record("#NAMN %s", p.Details.Name)
		s.record("#UPPGIFT %d %d", pageNumberCode, p.Number)
		for _, section := range p.Sections {
			l := layouts[section.Name]
			for i, line := range section.Lines {
				for j, field := range line {
					if field != "" {
						s.record("#UPPGIFT %d %s", l.base+10*i+j, field)
					}
				}
			}
			for i, sum := range section.Sums {
				if sum != "" {
					s.record("#UPPGIFT %d %s", l.sums[i], sum)
				}
			}
		}
		s.record("#BLANKETTSLUT")
	}
	s.record("#FIL_SLUT")
	return s.close()
}
