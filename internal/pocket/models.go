package pocket

// RemoteArticle is one saved item as the /v3/get endpoint returns it. Numbers
// and flags arrive as strings; timestamps are epoch seconds with "0" meaning
// unset.
type RemoteArticle struct {
	ItemID        string               `json:"item_id"`
	ResolvedURL   string               `json:"resolved_url"`
	ResolvedTitle string               `json:"resolved_title"`
	Excerpt       string               `json:"excerpt"`
	WordCount     string               `json:"word_count"`
	TimeToRead    int                  `json:"time_to_read"`
	TopImageURL   string               `json:"top_image_url"`
	Status        string               `json:"status"`
	Favorite      string               `json:"favorite"`
	TimeFavorited string               `json:"time_favorited"`
	TimeRead      string               `json:"time_read"`
	TimeAdded     string               `json:"time_added"`
	TimeUpdated   string               `json:"time_updated"`
	Tags          map[string]RemoteTag `json:"tags"`
}

// RemoteTag is one entry of the keyed tag set embedded in a RemoteArticle.
type RemoteTag struct {
	ItemID string `json:"item_id"`
	Tag    string `json:"tag"`
}

type getResponse struct {
	Status int                      `json:"status"`
	List   map[string]RemoteArticle `json:"list"`
}

type sendResponse struct {
	Status int `json:"status"`
}

type oauthRequestResponse struct {
	Code string `json:"code"`
}

// Authorization is the result of exchanging a request token for an access
// token.
type Authorization struct {
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
}
