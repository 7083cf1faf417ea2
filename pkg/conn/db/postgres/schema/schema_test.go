package schema_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/bandq-jp/hirelog/pkg/conn/db/postgres/pool"
	"github.com/bandq-jp/hirelog/pkg/conn/db/postgres/schema"
)

// fakeRow scans a fixed version value, or fails with a fixed error.
type fakeRow struct {
	version int
	err     error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(*int); ok {
		*p = r.version
	}
	return nil
}

type fakeQueryer struct {
	row   fakeRow
	execs *[]string
}

func (q fakeQueryer) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	*q.execs = append(*q.execs, sql)
	return nil, nil
}

func (q fakeQueryer) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return nil, errors.New("should not be called")
}

func (q fakeQueryer) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return q.row
}

type fakeTx struct {
	fakeQueryer
	committed  *bool
	rolledBack *bool
}

func (tx fakeTx) Begin(ctx context.Context) (kpool.Tx, error) {
	return tx, nil
}

func (tx fakeTx) Commit(ctx context.Context) error {
	*tx.committed = true
	return nil
}

func (tx fakeTx) Rollback(ctx context.Context) error {
	*tx.rolledBack = true
	return nil
}

type fakeConn struct {
	fakeQueryer
}

func (c fakeConn) Begin(ctx context.Context) (kpool.Tx, error) {
	return nil, errors.New("should not be called")
}

func (c fakeConn) Release() {}

func (c fakeConn) Ping(ctx context.Context) error { return nil }

type fakePool struct {
	tx   fakeTx
	conn fakeConn
}

func (p fakePool) Begin(ctx context.Context) (kpool.Tx, error) {
	return p.tx, nil
}

func (p fakePool) Acquire(ctx context.Context) (kpool.Conn, error) {
	return p.conn, nil
}

func (p fakePool) Ping(ctx context.Context) error { return nil }

// repository builds a schema repository directory out of
// version -> filename -> content.
func repository(t *testing.T, versions map[string]map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for version, files := range versions {
		dir := filepath.Join(root, version)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		for name, content := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
	return root
}

func TestUpgrade(t *testing.T) {

	t.Run("every newer version is applied in order, oldest first", func(t *testing.T) {
		repo := repository(t, map[string]map[string]string{
			"2":     {"tables.sql": "create table b ()"},
			"1":     {"tables.sql": "create table a ()"},
			"notes": {"readme.sql": "should be skipped"},
		})

		execs := []string{}
		committed, rolledBack := false, false
		pool := fakePool{
			tx: fakeTx{
				fakeQueryer: fakeQueryer{execs: &execs},
				committed:   &committed, rolledBack: &rolledBack,
			},
			conn: fakeConn{fakeQueryer{row: fakeRow{version: 0}, execs: &execs}},
		}

		testee := schema.New(pool, repo)
		if err := testee.Upgrade(context.Background()); err != nil {
			t.Fatal(err)
		}

		expected := []string{
			"create table a ()",
			`DELETE FROM "schema_version"`,
			`INSERT INTO "schema_version" ("version") VALUES ($1)`,
			"create table b ()",
			`DELETE FROM "schema_version"`,
			`INSERT INTO "schema_version" ("version") VALUES ($1)`,
		}
		if len(execs) != len(expected) {
			t.Fatalf("unmatch statements. (actual, expected) = (%v, %v)", execs, expected)
		}
		for i := range expected {
			if execs[i] != expected[i] {
				t.Errorf("statement %d: (actual, expected) = (%q, %q)", i, execs[i], expected[i])
			}
		}
		if !committed {
			t.Error("the transaction should be committed")
		}
	})

	t.Run("versions at or below the recorded one are skipped", func(t *testing.T) {
		repo := repository(t, map[string]map[string]string{
			"1": {"tables.sql": "create table a ()"},
			"2": {"tables.sql": "create table b ()"},
		})

		execs := []string{}
		committed, rolledBack := false, false
		pool := fakePool{
			tx: fakeTx{
				fakeQueryer: fakeQueryer{execs: &execs},
				committed:   &committed, rolledBack: &rolledBack,
			},
			conn: fakeConn{fakeQueryer{row: fakeRow{version: 1}, execs: &execs}},
		}

		testee := schema.New(pool, repo)
		if err := testee.Upgrade(context.Background()); err != nil {
			t.Fatal(err)
		}

		if len(execs) == 0 || execs[0] != "create table b ()" {
			t.Errorf("only version 2 should be applied: %v", execs)
		}
	})
}

func TestVersion(t *testing.T) {

	t.Run("a database without the version table is version 0", func(t *testing.T) {
		execs := []string{}
		pool := fakePool{
			conn: fakeConn{fakeQueryer{
				row:   fakeRow{err: &pgconn.PgError{Code: pgerrcode.UndefinedTable}},
				execs: &execs,
			}},
		}

		testee := schema.New(pool, t.TempDir())
		version, err := testee.Version(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if version != 0 {
			t.Errorf("unmatch version: %d, expected: 0", version)
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		execs := []string{}
		fakeErr := errors.New("fake error")
		pool := fakePool{
			conn: fakeConn{fakeQueryer{row: fakeRow{err: fakeErr}, execs: &execs}},
		}

		testee := schema.New(pool, t.TempDir())
		if _, err := testee.Version(context.Background()); !errors.Is(err, fakeErr) {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
