package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"crbklasemen/pkg/klasemenfile"

	"github.com/fsnotify/fsnotify"
)

const (
	doneDir   = "done"
	failedDir = "failed"

	minSettle = 20 * time.Millisecond
)

// inbox imports klasemen CSV files dropped into dir. Each file is moved to
// done/ or failed/ once handled so it is never imported twice.
type inbox struct {
	dir    string
	create klasemenfile.CreateFunc
	settle time.Duration
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

// pending lists the CSV files waiting in the inbox, oldest name first.
func (ib *inbox) pending() ([]string, error) {
	entries, err := os.ReadDir(ib.dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !isCSV(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}

// process imports one file and moves it. A failing line leaves the earlier
// lines imported; the file still goes to failed/ with a .err note next to it.
func (ib *inbox) process(ctx context.Context, name string) (int, error) {
	path := filepath.Join(ib.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	n, importErr := klasemenfile.Import(ctx, f, ib.create)
	f.Close()

	target := doneDir
	if importErr != nil {
		target = failedDir
	}
	if err := os.MkdirAll(filepath.Join(ib.dir, target), 0o755); err != nil {
		return n, err
	}
	dest := filepath.Join(ib.dir, target, name)
	if err := os.Rename(path, dest); err != nil {
		return n, fmt.Errorf("move %s: %w", name, err)
	}
	if importErr != nil {
		note := fmt.Sprintf("imported %d rows before failing: %v\n", n, importErr)
		_ = os.WriteFile(dest+".err", []byte(note), 0o644)
	}
	return n, importErr
}

// drain processes everything currently waiting.
func (ib *inbox) drain(ctx context.Context) {
	names, err := ib.pending()
	if err != nil {
		log.Printf("list %s: %v", ib.dir, err)
		return
	}
	for _, name := range names {
		ib.report(name)(ib.process(ctx, name))
	}
}

func (ib *inbox) report(name string) func(int, error) {
	return func(n int, err error) {
		var rowErr *klasemenfile.RowError
		switch {
		case err == nil:
			log.Printf("imported %s: %d rows", name, n)
		case errors.As(err, &rowErr):
			log.Printf("import %s stopped at line %d after %d rows: %v", name, rowErr.Line, n, rowErr.Err)
		default:
			log.Printf("import %s failed after %d rows: %v", name, n, err)
		}
	}
}

// watch imports new files until ctx is done. Files are picked up once no
// write has touched them for the settle period.
func (ib *inbox) watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(ib.dir); err != nil {
		return err
	}
	log.Printf("Watching %s (debounced) ...", ib.dir)

	settle := ib.settle
	if settle < minSettle {
		settle = minSettle
	}
	pending := map[string]time.Time{}
	ticker := time.NewTicker(settle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name := filepath.Base(ev.Name)
			if filepath.Dir(ev.Name) != filepath.Clean(ib.dir) || !isCSV(name) {
				continue
			}
			pending[name] = time.Now()
		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) < settle {
					continue
				}
				delete(pending, name)
				if _, err := os.Stat(filepath.Join(ib.dir, name)); err != nil {
					continue
				}
				ib.report(name)(ib.process(ctx, name))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
