package snapshot

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"badminton/internal/adapters/storage"
	"badminton/internal/domain/ledger"
)

func openLedger(t *testing.T) *sql.DB {
	t.Helper()
	db, err := storage.Open(context.Background())
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	stmts := []string{
		"INSERT INTO player (name, contact, position) VALUES ('Zed', 'unknown', 1)",
		"INSERT INTO player (name, contact, position) VALUES ('Alice', '0412345678', 2)",
		"INSERT INTO fee_schedule (period, regular_rate, casual_rate) VALUES ('2025-06', 10, 15)",
		"INSERT INTO attendance (player_name, period, week, attended) VALUES ('Alice', '2025-06', 1, 1)",
		"INSERT INTO attendance (player_name, period, week, attended) VALUES ('Alice', '2025-06', 2, 0)",
		"INSERT INTO week_label (period, week, label) VALUES ('2025-06', 3, 'Finals')",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("seed %q: %v", s, err)
		}
	}
}

func dump(t *testing.T, db *sql.DB) *Image {
	t.Helper()
	img := &Image{}
	if err := img.read(context.Background(), db); err != nil {
		t.Fatalf("read tables: %v", err)
	}
	return img
}

// TestExportLoad_RoundTrip verifies all four tables survive export and load.
func TestExportLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := openLedger(t)
	seed(t, src)

	image, err := Export(ctx, src)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.HasPrefix(image, header) {
		t.Fatalf("image does not start with the SQLite header")
	}

	dst := openLedger(t)
	if err := Load(ctx, dst, image); err != nil {
		t.Fatalf("Load: %v", err)
	}

	want, got := dump(t, src), dump(t, dst)
	if len(got.Players) != 2 || got.Players[0].Name != "Zed" || got.Players[1].Position != 2 {
		t.Errorf("players = %+v, want Zed then Alice", got.Players)
	}
	if len(got.Fees) != len(want.Fees) || got.Fees[0] != want.Fees[0] {
		t.Errorf("fees = %+v, want %+v", got.Fees, want.Fees)
	}
	if len(got.Attendance) != 2 || got.Attendance[1].Attended != 0 {
		t.Errorf("attendance = %+v, want %+v", got.Attendance, want.Attendance)
	}
	if len(got.WeekLabels) != 1 || got.WeekLabels[0].Label != "Finals" {
		t.Errorf("week labels = %+v, want Finals", got.WeekLabels)
	}
}

// TestLoad_NonEmptyTarget verifies Load refuses to merge into existing data.
func TestLoad_NonEmptyTarget(t *testing.T) {
	ctx := context.Background()
	src := openLedger(t)
	seed(t, src)
	image, err := Export(ctx, src)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := openLedger(t)
	if _, err := dst.Exec("INSERT INTO player (name, contact, position) VALUES ('Bob', 'unknown', 1)"); err != nil {
		t.Fatalf("seed target: %v", err)
	}
	if err := Load(ctx, dst, image); !errors.Is(err, ledger.ErrDuplicateKey) {
		t.Fatalf("Load error = %v, want ErrDuplicateKey", err)
	}
	if got := dump(t, dst); len(got.Players) != 1 || got.Players[0].Name != "Bob" {
		t.Errorf("target changed after failed load: %+v", got.Players)
	}
}

// TestReplace_SwapsContents verifies Replace discards the previous rows.
func TestReplace_SwapsContents(t *testing.T) {
	ctx := context.Background()
	src := openLedger(t)
	seed(t, src)
	image, err := Export(ctx, src)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := openLedger(t)
	if _, err := dst.Exec("INSERT INTO player (name, contact, position) VALUES ('Bob', 'unknown', 1)"); err != nil {
		t.Fatalf("seed target: %v", err)
	}
	if err := Replace(ctx, dst, image); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got := dump(t, dst)
	if len(got.Players) != 2 || got.Players[0].Name != "Zed" {
		t.Errorf("players after Replace = %+v", got.Players)
	}
}

// TestRead_RepeatedReadsLeaveNoFiles verifies each read opens its own copy
// of the image and removes it afterwards.
func TestRead_RepeatedReadsLeaveNoFiles(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	ctx := context.Background()
	src := openLedger(t)
	seed(t, src)
	image, err := Export(ctx, src)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	for i := 0; i < 5; i++ {
		img, err := Read(ctx, image)
		if err != nil {
			t.Fatalf("Read #%d: %v", i, err)
		}
		if len(img.Players) != 2 || len(img.Attendance) != 2 {
			t.Fatalf("Read #%d = %+v, want 2 players and 2 marks", i, img)
		}
	}

	dst := openLedger(t)
	if err := Replace(ctx, dst, image); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got := dump(t, dst); len(got.WeekLabels) != 1 {
		t.Errorf("week labels after Replace = %+v", got.WeekLabels)
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("read temp dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir holds %d leftover files, want 0", len(entries))
	}
}

// TestRead_RejectsForeignBytes verifies garbage uploads are validation errors.
func TestRead_RejectsForeignBytes(t *testing.T) {
	tests := []struct {
		name  string
		image []byte
	}{
		{"empty", nil},
		{"text", []byte("name,contact\nAlice,unknown\n")},
		{"short header", []byte("SQLite format 3\x00")},
		{"header only", append([]byte("SQLite format 3\x00"), make([]byte, 200)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(context.Background(), tt.image); !errors.Is(err, ledger.ErrValidation) {
				t.Errorf("Read error = %v, want ErrValidation", err)
			}
		})
	}
}

// TestDigest_Stable verifies the digest depends only on content.
func TestDigest_Stable(t *testing.T) {
	a := Digest([]byte("ledger"))
	if a != Digest([]byte("ledger")) {
		t.Error("digest is not deterministic")
	}
	if a == Digest([]byte("ledger!")) {
		t.Error("different images share a digest")
	}
	if len(a) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(a))
	}
}
