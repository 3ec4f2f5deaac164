package api

type View struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
}

type Report struct {
	Name       string     `json:"name,omitempty"`
	Columns    []string   `json:"columns"`
	IndexNames []string   `json:"index_names"`
	Index      [][]string `json:"index"`
	Rows       [][]string `json:"rows"`
	RowCount   int        `json:"row_count"`
}

type CatalogEntry struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}
