package catalogfile

type (
	catalogFile struct {
		Categories []string  `yaml:"categories"`
		Products   []product `yaml:"products"`
	}

	product struct {
		ID            int64    `yaml:"id"`
		Name          string   `yaml:"name"`
		Price         string   `yaml:"price"`
		OriginalPrice string   `yaml:"original_price"`
		Rating        float64  `yaml:"rating"`
		Reviews       int      `yaml:"reviews"`
		Image         string   `yaml:"image"`
		Category      string   `yaml:"category"`
		IsNew         bool     `yaml:"is_new"`
		IsTrending    bool     `yaml:"is_trending"`
		Discount      *int     `yaml:"discount"`
		Description   string   `yaml:"description"`
		Features      []string `yaml:"features"`
		InStock       int      `yaml:"in_stock"`
		Brand         string   `yaml:"brand"`
		Colors        []string `yaml:"colors"`
	}
)
