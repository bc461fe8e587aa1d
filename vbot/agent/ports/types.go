package agentports

// FlowState is the wizard's current step in the checkout sequence.
type FlowState string

const (
	StateBrowsing               FlowState = "browsing"
	StateCollectingName         FlowState = "collecting_name"
	StateCollectingStreet       FlowState = "collecting_street"
	StateCollectingNumber       FlowState = "collecting_number"
	StateCollectingNeighborhood FlowState = "collecting_neighborhood"
	StateCollectingCity         FlowState = "collecting_city"
	StateCollectingZipcode      FlowState = "collecting_zipcode"
	StateCollectingComplement   FlowState = "collecting_complement"
	StateCollectingReference    FlowState = "collecting_reference"
	StateCollectingPayment      FlowState = "collecting_payment"
	StateConfirmingOrder        FlowState = "confirming_order"
	StateOrderCompleted         FlowState = "order_completed"
)

// CartItem is one cart line. Prices are snapshotted at add time; later
// catalog price changes do not affect existing lines.
type CartItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
	UnitType    string  `json:"unitType,omitempty"`
	BarCode     string  `json:"barCode,omitempty"`
}

// ListModeState tracks progress through a customer-supplied shopping list.
type ListModeState struct {
	Items               []string `json:"items"`
	RawText             string   `json:"rawText,omitempty"`
	Index               int      `json:"index"`
	Done                int      `json:"done"`
	Total               int      `json:"total"`
	Active              bool     `json:"active"`
	IgnoreDetectionOnce bool     `json:"ignoreDetectionOnce,omitempty"`
}

// CustomerData is the wizard-collected field bag for one conversation.
// It is reset to {FlowState: StateBrowsing} once an order is confirmed.
type CustomerData struct {
	Name         string         `json:"name,omitempty"`
	Street       string         `json:"street,omitempty"`
	Number       string         `json:"number,omitempty"`
	Neighborhood string         `json:"neighborhood,omitempty"`
	City         string         `json:"city,omitempty"`
	UF           string         `json:"uf,omitempty"`
	ZipCode      string         `json:"zipCode,omitempty"`
	Complement   string         `json:"complement,omitempty"`
	Reference    string         `json:"reference,omitempty"`
	PaymentType  string         `json:"paymentType,omitempty"`
	FlowState    FlowState      `json:"flowState,omitempty"`
	ListMode     *ListModeState `json:"listMode,omitempty"`

	// LastRecommendedProductID suppresses repeated image sends for the
	// same product in consecutive turns.
	LastRecommendedProductID string `json:"lastRecommendedProductId,omitempty"`
}

// State returns the flow state, defaulting to browsing when unset.
func (c CustomerData) State() FlowState {
	if c.FlowState == "" {
		return StateBrowsing
	}
	return c.FlowState
}
