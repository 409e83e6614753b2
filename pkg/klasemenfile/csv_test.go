package klasemenfile

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"crbklasemen/models"

	"github.com/xuri/excelize/v2"
)

func sample() []models.Klasemen {
	return []models.Klasemen{
		{Top: 1, UserID: "ceria01", Winloss: 1500000, Turnover: 25000000.5, Hadiah: "iPhone 15", Catatan: "", Keterangan: models.KeteranganAktif},
		{Top: 2, UserID: "ceria02", Winloss: -35000, Turnover: 900000, Hadiah: "Saldo 500rb", Catatan: "cek ulang", Keterangan: models.KeteranganTidakAktif},
		{Top: 3, UserID: "ceria03", Winloss: 0, Turnover: 0, Hadiah: "Kaos", Catatan: "lama", Keterangan: models.KeteranganExpired},
	}
}

func equalFields(a, b models.Klasemen) bool {
	return a.Top == b.Top && a.UserID == b.UserID && a.Winloss == b.Winloss && a.Turnover == b.Turnover &&
		a.Hadiah == b.Hadiah && a.Catatan == b.Catatan && a.Keterangan == b.Keterangan
}

func TestEncodeLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, sample()[:1]); err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "TOP,User ID,Winloss,TurnOver,Hadiah,Catatan,Keterangan\n1,ceria01,1500000,25000000.5,iPhone 15,,Aktif\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestRoundTrip(t *testing.T) {
	in := sample()
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d rows got %d", len(in), len(out))
	}
	for i := range in {
		if !equalFields(in[i], out[i]) {
			t.Fatalf("row %d: got %+v want %+v", i, out[i], in[i])
		}
	}
}

func TestRoundTripQuotesSeparators(t *testing.T) {
	in := []models.Klasemen{{Top: 7, UserID: "x", Winloss: 1, Turnover: 2, Hadiah: "Voucher 100, 200", Catatan: "baris satu\nbaris \"dua\"", Keterangan: models.KeteranganAktif}}
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || !equalFields(in[0], out[0]) {
		t.Fatalf("got %+v want %+v", out, in)
	}
}

func TestImportTrimsAndSkipsBlankLines(t *testing.T) {
	src := "TOP,User ID,Winloss,TurnOver,Hadiah,Catatan,Keterangan\r\n" +
		" 2 , budi ,10.5, 300 , Emas , catatan ,Aktif\r\n" +
		"\r\n" +
		"   \n" +
		"1,ani,-4,0,Kaos,,Tidak aktif\n"
	rows, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d", len(rows))
	}
	first := rows[0]
	if first.Top != 2 || first.UserID != "budi" || first.Winloss != 10.5 || first.Turnover != 300 || first.Hadiah != "Emas" || first.Catatan != "catatan" {
		t.Fatalf("unexpected first row %+v", first)
	}
	if rows[1].Keterangan != models.KeteranganTidakAktif {
		t.Fatalf("unexpected keterangan %q", rows[1].Keterangan)
	}
}

func TestImportStopsAtMalformedLine(t *testing.T) {
	src := strings.Join([]string{
		"TOP,User ID,Winloss,TurnOver,Hadiah,Catatan,Keterangan",
		"1,a,1,1,h,c,Aktif",
		"2,b,1,1,h,c,Aktif",
		"3,c,satu,1,h,c,Aktif",
		"4,d,1,1,h,c,Aktif",
	}, "\n")
	var stored []string
	n, err := Import(context.Background(), strings.NewReader(src), func(_ context.Context, k *models.Klasemen) error {
		stored = append(stored, k.UserID)
		return nil
	})
	if n != 2 || len(stored) != 2 {
		t.Fatalf("expected 2 rows committed before failure, got n=%d stored=%v", n, stored)
	}
	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Line != 4 {
		t.Fatalf("expected RowError on line 4 got %v", err)
	}
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected ErrMalformedRow got %v", err)
	}
}

func TestImportRejectsWrongFieldCountAndEnum(t *testing.T) {
	cases := []string{
		"h\n1,a,1,1,h,Aktif\n",
		"h\n1,a,1,1,h,c,Aktif,extra\n",
		"h\n1,a,1,1,h,c,Active\n",
		"h\n1,a,1,-5,h,c,Aktif\n",
		"h\n1, ,1,1,h,c,Aktif\n",
	}
	for _, src := range cases {
		if _, err := Decode(strings.NewReader(src)); !errors.Is(err, ErrMalformedRow) {
			t.Fatalf("expected ErrMalformedRow for %q got %v", src, err)
		}
	}
}

func TestImportStoreFailureKeepsEarlierRows(t *testing.T) {
	src := "h\n1,a,1,1,h,c,Aktif\n2,b,1,1,h,c,Aktif\n"
	boom := errors.New("store down")
	n, err := Import(context.Background(), strings.NewReader(src), func(_ context.Context, k *models.Klasemen) error {
		if k.UserID == "b" {
			return boom
		}
		return nil
	})
	if n != 1 || !errors.Is(err, boom) || errors.Is(err, ErrMalformedRow) {
		t.Fatalf("expected store failure after 1 row, got n=%d err=%v", n, err)
	}
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, time.November, 3, 22, 0, 0, 0, time.UTC)
	if got := FileName(now, "csv"); got != "klasemen_2025-11-03.csv" {
		t.Fatalf("unexpected file name %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sample()); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 4 || rows[0][1] != "User ID" || rows[2][1] != "ceria02" || rows[3][6] != "Expired" {
		t.Fatalf("unexpected sheet content %v", rows)
	}
}

func TestImportToleratesStrayQuotesAndSpaces(t *testing.T) {
	src := "TOP,User ID,Winloss,TurnOver,Hadiah,Catatan,Keterangan\n" +
		"1,user1,10,100,TV 32\",bonus,Aktif\n" +
		"2, user2, 10, 100, \"HP, Samsung\", ok, Aktif\n" +
		"3,user3,1,1,Kaos,kata \"dia\",Expired\n"
	out, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(out))
	}
	if out[0].Hadiah != `TV 32"` || out[0].Catatan != "bonus" {
		t.Fatalf("row 1: %+v", out[0])
	}
	if out[1].UserID != "user2" || out[1].Hadiah != "HP, Samsung" || out[1].Catatan != "ok" {
		t.Fatalf("row 2: %+v", out[1])
	}
	if out[2].Catatan != `kata "dia"` || out[2].Keterangan != models.KeteranganExpired {
		t.Fatalf("row 3: %+v", out[2])
	}
}

func TestWriteXLSXStyling(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sample()); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	width, err := f.GetColWidth(sheetName, "F")
	if err != nil || width != columnWidths[5] {
		t.Fatalf("column F width=%v err=%v", width, err)
	}
	idx, err := f.GetCellStyle(sheetName, "A1")
	if err != nil {
		t.Fatalf("header style: %v", err)
	}
	style, err := f.GetStyle(idx)
	if err != nil || style.Font == nil || !style.Font.Bold {
		t.Fatalf("header not bold: %+v err=%v", style, err)
	}
}

func TestStyleSheetReportsErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	// the default sheet is still named Sheet1
	if err := styleSheet(f, 2); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}
