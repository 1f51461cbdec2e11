package origerr

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// FormatFlat formats a record as a fixed-width origerr line.
// Columns: orid sxx syy szz stt sxy sxz syz stx sty stz sdobs smajax sminax
// strike sdepth stime conf commid lddate.
func FormatFlat(r Record, lddate time.Time) []byte {
	line := fmt.Sprintf("%8d %15.4f %15.4f %15.4f %15.4f %15.4f %15.4f %15.4f %15.4f %15.4f %15.4f %9.4f %9.4f %9.4f %6.2f %9.4f %8.2f %5.3f %8d %-17s\n",
		r.Orid,
		r.Sxx, r.Syy, r.Szz, r.Stt, r.Sxy, r.Sxz, r.Syz, r.Stx, r.Sty, r.Stz,
		r.Sdobs, r.Smajax, r.Sminax, r.Strike, r.Sdepth, r.Stime, r.Conf,
		-1, lddate.UTC().Format("2006-01-02 15:04:05"))
	return []byte(line)
}

// Header is the CSV header matching Row.
func Header() []string {
	return []string{
		"orid", "event_id", "id",
		"sxx", "syy", "szz", "stt", "sxy", "sxz", "syz", "stx", "sty", "stz",
		"sdobs", "smajax", "sminax", "strike", "sdepth", "stime", "conf", "area_km2",
		"major_trend", "major_plunge", "major_km",
		"intermediate_trend", "intermediate_plunge", "intermediate_km",
		"minor_trend", "minor_plunge", "minor_km",
		"valid",
	}
}

// Row formats a record for WriteCSV.
func (r Record) Row() []string {
	row := []string{strconv.Itoa(r.Orid), r.EventID, r.ID.String()}
	for _, v := range []float64{
		r.Sxx, r.Syy, r.Szz, r.Stt, r.Sxy, r.Sxz, r.Syz, r.Stx, r.Sty, r.Stz,
		r.Sdobs, r.Smajax, r.Sminax, r.Strike, r.Sdepth, r.Stime, r.Conf, r.Area,
	} {
		row = append(row, fmt.Sprintf("%.4f", v))
	}
	for _, a := range r.Ellipsoid {
		row = append(row, fmt.Sprintf("%.2f", a.Trend), fmt.Sprintf("%.2f", a.Plunge), fmt.Sprintf("%.4f", a.Length))
	}
	return append(row, strconv.FormatBool(r.Valid))
}

// WriteCSV writes a header and one row per record.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header()); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(r.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFlat writes one fixed-width line per record.
func WriteFlat(w io.Writer, recs []Record, lddate time.Time) error {
	for _, r := range recs {
		if _, err := w.Write(FormatFlat(r, lddate)); err != nil {
			return err
		}
	}
	return nil
}
