package serp

// SearchResults is one decoded page of results. Which result slices are
// populated depends on the query's search type.
type SearchResults struct {
	SearchMetadata    SearchMetadata     `json:"search_metadata"`
	SearchParameters  SearchParameters   `json:"search_parameters"`
	SearchInformation *SearchInformation `json:"search_information,omitempty"`
	OrganicResults    []OrganicResult    `json:"organic_results,omitempty"`
	AnswerBox         *AnswerBox         `json:"answer_box,omitempty"`
	KnowledgeGraph    *KnowledgeGraph    `json:"knowledge_graph,omitempty"`
	RelatedSearches   []RelatedSearch    `json:"related_searches,omitempty"`
	NewsResults       []NewsResult       `json:"news_results,omitempty"`
	VideoResults      []VideoResult      `json:"video_results,omitempty"`
	ShoppingResults   []ShoppingResult   `json:"shopping_results,omitempty"`
	LocalResults      *LocalResults      `json:"local_results,omitempty"`
	InlineImages      []InlineImage      `json:"inline_images,omitempty"`
	Pagination        *Pagination        `json:"pagination,omitempty"`
	SerpapiPagination *Pagination        `json:"serpapi_pagination,omitempty"`
}

// Count returns the number of results carried for the given search
// type. The pagination engine uses it to detect empty and short pages.
func (r *SearchResults) Count(t SearchType) int {
	switch t {
	case SearchTypeImages:
		return len(r.InlineImages)
	case SearchTypeVideos:
		return len(r.VideoResults)
	case SearchTypeNews:
		return len(r.NewsResults)
	case SearchTypeShopping:
		return len(r.ShoppingResults)
	case SearchTypeLocal:
		if r.LocalResults == nil {
			return 0
		}
		return len(r.LocalResults.Places)
	default:
		return len(r.OrganicResults)
	}
}

// HasMore reports whether the response advertises a further page.
func (r *SearchResults) HasMore() bool {
	if r.SerpapiPagination != nil && (r.SerpapiPagination.Next != "" || r.SerpapiPagination.NextLink != "") {
		return true
	}
	if r.Pagination != nil && (r.Pagination.Next != "" || r.Pagination.NextLink != "") {
		return true
	}
	return false
}

// hasPagination reports whether the response carried pagination data at
// all; without it, exhaustion is decided from page length alone.
func (r *SearchResults) hasPagination() bool {
	return r.Pagination != nil || r.SerpapiPagination != nil
}

// SearchMetadata describes how the request was processed.
type SearchMetadata struct {
	ID             string  `json:"id"`
	Status         string  `json:"status,omitempty"`
	JSONEndpoint   string  `json:"json_endpoint,omitempty"`
	CreatedAt      string  `json:"created_at,omitempty"`
	ProcessedAt    string  `json:"processed_at,omitempty"`
	GoogleURL      string  `json:"google_url,omitempty"`
	TotalTimeTaken float64 `json:"total_time_taken,omitempty"`
}

// SearchParameters echoes the parameters the API applied.
type SearchParameters struct {
	Engine       string `json:"engine"`
	Query        string `json:"q"`
	GoogleDomain string `json:"google_domain,omitempty"`
	Country      string `json:"gl,omitempty"`
	Language     string `json:"hl,omitempty"`
	Device       string `json:"device,omitempty"`
}

// SearchInformation summarizes the result set.
type SearchInformation struct {
	OrganicResultsState string  `json:"organic_results_state,omitempty"`
	QueryDisplayed      string  `json:"query_displayed,omitempty"`
	TimeTakenDisplayed  float64 `json:"time_taken_displayed,omitempty"`
	TotalResults        uint64  `json:"total_results,omitempty"`
}

// OrganicResult is one main web result.
type OrganicResult struct {
	Position      int      `json:"position,omitempty"`
	Title         string   `json:"title"`
	Link          string   `json:"link"`
	DisplayedLink string   `json:"displayed_link,omitempty"`
	Snippet       string   `json:"snippet,omitempty"`
	Highlighted   []string `json:"snippet_highlighted_words,omitempty"`
	Date          string   `json:"date,omitempty"`
}

// AnswerBox is a featured snippet or direct answer.
type AnswerBox struct {
	Type          string `json:"type"`
	Title         string `json:"title,omitempty"`
	Answer        string `json:"answer,omitempty"`
	Snippet       string `json:"snippet,omitempty"`
	Link          string `json:"link,omitempty"`
	DisplayedLink string `json:"displayed_link,omitempty"`
}

// KnowledgeGraph is the knowledge panel.
type KnowledgeGraph struct {
	Title       string `json:"title"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// RelatedSearch is a related query suggestion.
type RelatedSearch struct {
	Query string `json:"query,omitempty"`
	Link  string `json:"link,omitempty"`
}

// Pagination carries next-page links. Used for both the engine's own
// pagination block and the API's serpapi_pagination block.
type Pagination struct {
	Current    int               `json:"current,omitempty"`
	Next       string            `json:"next,omitempty"`
	NextLink   string            `json:"next_link,omitempty"`
	OtherPages map[string]string `json:"other_pages,omitempty"`
}

// NewsResult is one news article.
type NewsResult struct {
	Position  int    `json:"position,omitempty"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source,omitempty"`
	Date      string `json:"date,omitempty"`
	Snippet   string `json:"snippet,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// VideoResult is one video result.
type VideoResult struct {
	Position      int    `json:"position,omitempty"`
	Title         string `json:"title"`
	Link          string `json:"link"`
	DisplayedLink string `json:"displayed_link,omitempty"`
	Thumbnail     string `json:"thumbnail,omitempty"`
	Channel       string `json:"channel,omitempty"`
	Duration      string `json:"duration,omitempty"`
	Platform      string `json:"platform,omitempty"`
	Date          string `json:"date,omitempty"`
}

// ShoppingResult is one product result.
type ShoppingResult struct {
	Position       int      `json:"position,omitempty"`
	Title          string   `json:"title"`
	Link           string   `json:"link,omitempty"`
	ProductLink    string   `json:"product_link,omitempty"`
	ProductID      string   `json:"product_id,omitempty"`
	Source         string   `json:"source,omitempty"`
	Price          string   `json:"price,omitempty"`
	ExtractedPrice float64  `json:"extracted_price,omitempty"`
	Rating         float64  `json:"rating,omitempty"`
	Reviews        int      `json:"reviews,omitempty"`
	Extensions     []string `json:"extensions,omitempty"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
}

// LocalResults groups local-search places.
type LocalResults struct {
	MoreLocationsLink string       `json:"more_locations_link,omitempty"`
	Places            []LocalPlace `json:"places,omitempty"`
}

// LocalPlace is one local business result.
type LocalPlace struct {
	Position       int             `json:"position,omitempty"`
	Title          string          `json:"title"`
	PlaceID        string          `json:"place_id,omitempty"`
	GPSCoordinates *GPSCoordinates `json:"gps_coordinates,omitempty"`
	Rating         float64         `json:"rating,omitempty"`
	Reviews        int             `json:"reviews,omitempty"`
	Price          string          `json:"price,omitempty"`
	Type           string          `json:"type,omitempty"`
	Address        string          `json:"address,omitempty"`
	OpenState      string          `json:"open_state,omitempty"`
	Hours          string          `json:"hours,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Website        string          `json:"website,omitempty"`
	Description    string          `json:"description,omitempty"`
}

// GPSCoordinates locates a place.
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InlineImage is one image result.
type InlineImage struct {
	Position  int    `json:"position,omitempty"`
	Title     string `json:"title,omitempty"`
	Link      string `json:"link,omitempty"`
	Source    string `json:"source,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Original  string `json:"original,omitempty"`
}
