package catalog

import (
	"strings"
	"testing"
)

// The browse aggregate must run on both drivers db.New can open. The sqlite
// fragments may not use postgres-only syntax (ILIKE, :: casts, ~ regex,
// jsonb arrows), and the postgres fragments keep the numeric cast that
// rounds half-up.
func TestStatsSQLDialects(t *testing.T) {
	postgresOnly := []string{"ILIKE", "::", "->>", " ~ "}

	for _, sql := range []string{
		statsSelectSQL("sqlite"),
		searchSQL("sqlite"),
		releasedAfterSQL("sqlite"),
	} {
		for _, token := range postgresOnly {
			if strings.Contains(sql, token) {
				t.Fatalf("sqlite fragment uses postgres syntax %q:\n%s", token, sql)
			}
		}
	}

	if !strings.Contains(statsSelectSQL("sqlite"), "ROUND(AVG(rating.rating), 1)") {
		t.Fatalf("sqlite select must round to one decimal:\n%s", statsSelectSQL("sqlite"))
	}
	if !strings.Contains(searchSQL("sqlite"), "LOWER(item.name) LIKE") {
		t.Fatalf("sqlite search must fold case:\n%s", searchSQL("sqlite"))
	}
	if !strings.Contains(releasedAfterSQL("sqlite"), "json_extract(item.metadata, '$.release_date')") {
		t.Fatalf("sqlite release filter must use json_extract:\n%s", releasedAfterSQL("sqlite"))
	}

	if !strings.Contains(statsSelectSQL("postgres"), "::numeric, 1") {
		t.Fatalf("postgres select lost the numeric rounding cast:\n%s", statsSelectSQL("postgres"))
	}
	if searchSQL("postgres") != "item.name ILIKE ?" {
		t.Fatalf("postgres search changed: %s", searchSQL("postgres"))
	}
	if !strings.Contains(releasedAfterSQL("postgres"), "metadata->>'year'") {
		t.Fatalf("postgres release filter lost the year branch:\n%s", releasedAfterSQL("postgres"))
	}
}
