package browser

import "github.com/papapumpkin/sysbrowse/internal/registry"

// DynamicColumns returns the registered columns sorted by their order key.
// With activeOnly set, columns disabled in settings are left out.
func (m *Model) DynamicColumns(activeOnly bool) []registry.Column {
	var out []registry.Column
	for _, col := range m.source.Columns() {
		if !activeOnly || m.settings.TableColumnState(col.Name) {
			out = append(out, col)
		}
	}
	registry.SortColumns(out)
	return out
}

// FindDynamicColumn looks a column up by name. ok is false when no column
// matches, or when activeOnly is set and the column is disabled.
func (m *Model) FindDynamicColumn(name string, activeOnly bool) (col registry.Column, ok bool) {
	for _, c := range m.source.Columns() {
		if c.Name == name && (!activeOnly || m.settings.TableColumnState(c.Name)) {
			return c, true
		}
	}
	return registry.Column{}, false
}

// ColumnValue renders col for item. Columns without a value func render empty.
func (m *Model) ColumnValue(col registry.Column, item *SubsystemItem) string {
	if col.Value == nil || item == nil {
		return ""
	}
	return col.Value(item.Instance())
}
