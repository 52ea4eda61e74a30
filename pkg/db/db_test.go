package db

import "testing"

func TestMongoDatabaseName(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"mongodb+srv://u:p@cluster0.example.net/guides?retryWrites=true&w=majority", "guides"},
		{"mongodb://localhost:27017", DefaultMongoDatabase},
		{"mongodb://localhost:27017/", DefaultMongoDatabase},
		{"::not a uri", DefaultMongoDatabase},
	}
	for _, tc := range cases {
		if got := MongoDatabaseName(tc.uri); got != tc.want {
			t.Fatalf("MongoDatabaseName(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}

func TestOpenSQLiteMemory(t *testing.T) {
	gdb, err := Open("sqlite", ":memory:", Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close(gdb)

	if err := gdb.Exec("CREATE TABLE t (id TEXT PRIMARY KEY)").Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := gdb.Exec("INSERT INTO t (id) VALUES ('a')").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	var n int64
	if err := gdb.Raw("SELECT COUNT(*) FROM t").Scan(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "dsn", Options{}); err == nil {
		t.Fatalf("Open(oracle): want error")
	}
}
