package domain

// Product is the catalog snapshot as served by the commerce API. Cart lines
// and favorites carry a denormalized copy for display, so the struct doubles
// as the stored shape in the session-local store.
type Product struct {
	ID          string     `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Stock       int        `json:"stock"`
	Price       float64    `json:"price"`
	Image       string     `json:"image,omitempty"`
	Categories  []Category `json:"categories,omitempty"`
}

type Category struct {
	ID       int64  `json:"id"`
	ParentID *int64 `json:"parentId"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

// Showcase is a curated product group for the landing page.
type Showcase struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Order       int       `json:"order"`
	Products    []Product `json:"products"`
}

// Page is a paginated product listing with the backend's paging metadata.
type Page struct {
	Data []Product `json:"data"`
	Meta Meta      `json:"meta"`
}

type Meta struct {
	PerPage     int `json:"perPage"`
	LastPage    int `json:"lastPage"`
	CurrentPage int `json:"currentPage"`
}
