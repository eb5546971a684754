package places

// Wire types for the Google Maps web service JSON responses.

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Geometry struct {
	Location Location `json:"location"`
}

type OpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}

// PlaceResult is one place from Text Search or Place Details.
type PlaceResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Geometry         Geometry      `json:"geometry"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	FormattedAddress string        `json:"formatted_address,omitempty"`
	Vicinity         string        `json:"vicinity,omitempty"`
	Types            []string      `json:"types,omitempty"`
	BusinessStatus   string        `json:"business_status,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`

	// Details-only fields.
	URL                  string `json:"url,omitempty"`
	Website              string `json:"website,omitempty"`
	FormattedPhoneNumber string `json:"formatted_phone_number,omitempty"`
}

type textSearchResponse struct {
	Results       []PlaceResult `json:"results"`
	Status        string        `json:"status"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	NextPageToken string        `json:"next_page_token,omitempty"`
}

type detailsResponse struct {
	Result       PlaceResult `json:"result"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

type geocodeResponse struct {
	Results []struct {
		FormattedAddress string   `json:"formatted_address"`
		Geometry         Geometry `json:"geometry"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

type matrixElement struct {
	Status   string    `json:"status"`
	Duration textValue `json:"duration"`
	Distance textValue `json:"distance"`
}

type distanceMatrixResponse struct {
	Rows []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}
