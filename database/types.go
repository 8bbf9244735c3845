package database

// Column представляет колонку таблицы
type Column struct {
	Name string
	Type string
}

// Table представляет таблицу с колонками
type Table struct {
	Name    string
	Columns []Column // Порядок сохранён
}

// ColumnNames возвращает имена колонок в исходном порядке
func (t Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// Relation представляет внешний ключ между таблицами
type Relation struct {
	ConstraintName string
	SourceTable    string
	SourceColumn   string
	TargetTable    string
	TargetColumn   string
}
