package s3

import "testing"

func TestKey(t *testing.T) {
	cases := []struct {
		prefix   string
		relative string
		want     string
	}{
		{"", "data.tar.gz", "data.tar.gz"},
		{"hosts/h1", "data.tar.gz", "hosts/h1/data.tar.gz"},
		{"hosts/h1", "/data.tar.gz", "hosts/h1/data.tar.gz"},
		{"hosts/h1", "data-snar-0", "hosts/h1/data-snar-0"},
	}
	for _, c := range cases {
		client := &Client{prefix: c.prefix}
		if got := client.Key(c.relative); got != c.want {
			t.Errorf("Key(%q) with prefix %q = %q, want %q", c.relative, c.prefix, got, c.want)
		}
	}
}
