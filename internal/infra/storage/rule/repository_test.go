package rule

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Репозиторий и миграция должны называть колонки одинаково:
// расхождение означает ошибку "column does not exist" на каждом запросе
func TestRuleColumns_MatchMigrationSchema(t *testing.T) {
	ddl := availabilityRulesDDL(t)

	for _, col := range ruleColumns {
		assert.Contains(t, ddl, col, "колонка %q отсутствует в схеме availability_rules", col)
	}
}

// availabilityRulesDDL возвращает блок CREATE TABLE availability_rules из миграции
func availabilityRulesDDL(t *testing.T) string {
	t.Helper()

	raw, err := os.ReadFile("../../../../migrations/001_init.sql")
	require.NoError(t, err)

	sql := string(raw)
	start := strings.Index(sql, "CREATE TABLE IF NOT EXISTS availability_rules")
	require.NotEqual(t, -1, start, "миграция не создает таблицу availability_rules")

	end := strings.Index(sql[start:], ");")
	require.NotEqual(t, -1, end)

	return sql[start : start+end]
}
