package clients

const (
	// DefaultBaseURL is the hosted auction backend.
	DefaultBaseURL = "https://ipl-server-dsy3.onrender.com/api"

	// Paths under /auctionlive
	auctionPath        = "/auctionlive/%s"
	playersPath        = "/auctionlive/%s/players"
	biddingHistoryPath = "/auctionlive/biddinghistory/%s"
	priceUpdatePath    = "/auctionlive/%s/players/price"
	sellPlayerPath     = "/auctionlive/%s/players/sell"
	markUnsoldPath     = "/auctionlive/%s/players/unsold"
	franchisePursePath = "/auctionlive/franchise/%s?auctionId=%s"

	// Headers
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
)
