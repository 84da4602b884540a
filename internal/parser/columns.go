package parser

// Field identifies a logical listing attribute read from the sheet.
type Field int

const (
	FieldName Field = iota
	FieldGenre1
	FieldGenre2
	FieldLink
	FieldLocation
	FieldStation
	FieldStation2
)

// ColumnAliases lists, per field, the header names accepted for it in lookup order.
// The first alias whose cell is non-empty wins. The Japanese names come from the
// original sheet layout, the bilingual ones from the later "name(店名)" layout.
var ColumnAliases = map[Field][]string{
	FieldName:     {"店名", "name(店名)"},
	FieldGenre1:   {"ジャンル", "genre1"},
	FieldGenre2:   {"ジャンル2", "genre2"},
	FieldLink:     {"マップ", "link(Gmap)"},
	FieldLocation: {"地名", "location(市)"},
	FieldStation:  {"駅名", "station1(駅)"},
	FieldStation2: {"駅名2", "station2(駅)"},
}

// record is one data row keyed by header name.
type record map[string]string

// newRecord maps cells positionally onto header names. Missing cells become ""
// and a repeated header name keeps the value of its last column.
func newRecord(header, cells []string) record {
	rec := make(record, len(header))
	for i, column := range header {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		rec[column] = value
	}
	return rec
}

// get resolves a field through its aliases.
func (r record) get(f Field) string {
	for _, alias := range ColumnAliases[f] {
		if v := r[alias]; v != "" {
			return v
		}
	}
	return ""
}
