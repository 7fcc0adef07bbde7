package ecommerce

// AmazonInventorySummariesResponse is the FBA inventory summaries envelope
type AmazonInventorySummariesResponse struct {
	Payload struct {
		InventorySummaries []AmazonInventorySummary `json:"inventorySummaries"`
	} `json:"payload"`
	Pagination *AmazonPagination `json:"pagination"`
	Errors     []AmazonError     `json:"errors"`
}

// AmazonInventorySummary is one listing's FBA inventory position
type AmazonInventorySummary struct {
	ASIN          string `json:"asin"`
	SellerSKU     string `json:"sellerSku"`
	ProductName   string `json:"productName"`
	TotalQuantity int64  `json:"totalQuantity"`
}

// AmazonPagination carries the cursor for the next summaries page
type AmazonPagination struct {
	NextToken string `json:"nextToken"`
}

// AmazonError is one error entry in an SP-API response
type AmazonError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
