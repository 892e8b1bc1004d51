package dbadmin

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspector_MissingTables(t *testing.T) {
	tests := []struct {
		name    string
		present []string
		want    []string
	}{
		{"all present", []string{"app_logs", "users", "system_metrics"}, nil},
		{"one missing", []string{"users", "app_logs"}, []string{"system_metrics"}},
		{"empty schema", nil, []string{"users", "app_logs", "system_metrics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)

			rows := sqlmock.NewRows([]string{"table_name"})
			for _, name := range tt.present {
				rows.AddRow(name)
			}
			mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).WillReturnRows(rows)

			missing, err := NewInspector(db).MissingTables(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, missing)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInspector_Stats(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("(SELECT COUNT(*) FROM users) AS users")).
		WillReturnRows(sqlmock.NewRows([]string{"users", "logs", "metrics"}).AddRow(5, 10, 5))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY level")).
		WillReturnRows(sqlmock.NewRows([]string{"level", "count"}).
			AddRow("info", 5).
			AddRow("error", 2).
			AddRow("warn", 2).
			AddRow("debug", 1))

	stats, err := NewInspector(db).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.Users)
	assert.Equal(t, int64(10), stats.Logs)
	assert.Equal(t, int64(5), stats.Metrics)
	require.Len(t, stats.Levels, 4)
	assert.Equal(t, LevelCount{Level: "info", Count: 5}, stats.Levels[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}
