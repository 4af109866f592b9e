package taxonomy

import "github.com/angelmondragon/catalogo-industrial-backend/internal/crud"

const (
	categoriesTable    = "categories"
	subcategoriesTable = "subcategories"
	manufacturersTable = "manufacturers"
	brandsTable        = "brands"
	modelsTable        = "models"
)

func nameSort(alias string) map[string]string {
	return map[string]string{
		"name":   alias + ".name ASC",
		"newest": alias + ".created_at DESC",
	}
}

var categoryResource = crud.Resource{
	Table: categoriesTable,
	Alias: "c",
	Columns: []string{
		"c.*",
		"(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count",
	},
	SearchColumns: []string{"c.name", "c.description", "c.slug"},
	Sorts: func() map[string]string {
		sorts := nameSort("c")
		sorts["sort_order"] = "c.sort_order ASC, c.name ASC"
		return sorts
	}(),
	DefaultOrder: "c.sort_order ASC, c.name ASC",
}

var subcategoryResource = crud.Resource{
	Table:   subcategoriesTable,
	Alias:   "sc",
	Columns: []string{"sc.*", "c.name AS category_name"},
	Joins:   []string{"LEFT JOIN categories c ON c.id = sc.category_id"},
	Filters: []crud.Filter{
		{Param: "category_id", Column: "sc.category_id", Kind: crud.Exact},
	},
	SearchColumns: []string{"sc.name", "sc.description", "sc.slug", "c.name"},
	Sorts:         nameSort("sc"),
	DefaultOrder:  "sc.sort_order ASC, sc.name ASC",
}

var manufacturerResource = crud.Resource{
	Table: manufacturersTable,
	Alias: "m",
	Columns: []string{
		"m.*",
		"(SELECT COUNT(*) FROM brands b WHERE b.manufacturer_id = m.id) AS brand_count",
	},
	Filters: []crud.Filter{
		{Param: "country", Column: "m.country", Kind: crud.Text},
	},
	SearchColumns: []string{"m.name", "m.description", "m.country"},
	Sorts:         nameSort("m"),
	DefaultOrder:  "m.name ASC",
}

var brandResource = crud.Resource{
	Table:   brandsTable,
	Alias:   "b",
	Columns: []string{"b.*", "m.name AS manufacturer_name"},
	Joins:   []string{"LEFT JOIN manufacturers m ON m.id = b.manufacturer_id"},
	Filters: []crud.Filter{
		{Param: "manufacturer_id", Column: "b.manufacturer_id", Kind: crud.Exact},
	},
	SearchColumns: []string{"b.name", "b.description", "m.name"},
	Sorts:         nameSort("b"),
	DefaultOrder:  "b.name ASC",
}

var modelResource = crud.Resource{
	Table: modelsTable,
	Alias: "mo",
	Columns: []string{
		"mo.*",
		"b.name AS brand_name",
		"b.manufacturer_id AS manufacturer_id",
		"m.name AS manufacturer_name",
	},
	Joins: []string{
		"LEFT JOIN brands b ON b.id = mo.brand_id",
		"LEFT JOIN manufacturers m ON m.id = b.manufacturer_id",
	},
	Filters: []crud.Filter{
		{Param: "brand_id", Column: "mo.brand_id", Kind: crud.Exact},
		{Param: "manufacturer_id", Column: "b.manufacturer_id", Kind: crud.Exact},
		{Param: "year", Column: "mo.year", Kind: crud.Exact},
	},
	SearchColumns: []string{"mo.name", "mo.description", "b.name", "m.name"},
	Sorts: func() map[string]string {
		sorts := nameSort("mo")
		sorts["year"] = "mo.year DESC"
		return sorts
	}(),
	DefaultOrder: "mo.name ASC",
}

// withActiveFilter returns a copy of res whose admin listing accepts is_active.
func withActiveFilter(res crud.Resource) crud.Resource {
	res.Filters = append(append([]crud.Filter{}, res.Filters...),
		crud.Filter{Param: "is_active", Column: res.Column("is_active"), Kind: crud.Bool})
	return res
}
