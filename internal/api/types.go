package api

import "encoding/json"

// successEnvelope is the backend's uniform success body. Data is decoded
// lazily because its shape differs per endpoint.
type successEnvelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// errorEnvelope is the backend's uniform error body on non-2xx statuses.
// Either field may be absent.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// PlanType selects the installment cadence for a purchase plan.
type PlanType string

const (
	PlanMonthly PlanType = "Monthly"
	PlanWeekly  PlanType = "Weekly"
)

// CurrentUser is the authenticated account as reported by the backend.
type CurrentUser struct {
	ID        string `json:"_id"`
	UserName  string `json:"userName,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	Role      string `json:"role"`
	Email     string `json:"email,omitempty"`
}

// EasyBoughtItem is a device purchase agreement.
type EasyBoughtItem struct {
	ID             string   `json:"_id"`
	IphoneModel    string   `json:"IphoneModel"`
	IphoneImageURL string   `json:"IphoneImageUrl"`
	Plan           PlanType `json:"Plan"`
	DownPayment    float64  `json:"downPayment"`
	LoanedAmount   float64  `json:"loanedAmount"`
	PhonePrice     float64  `json:"PhonePrice"`
	MonthlyPlan    int      `json:"monthlyPlan,omitempty"`
	WeeklyPlan     int      `json:"weeklyPlan,omitempty"`
	UserEmail      string   `json:"UserEmail,omitempty"`
}

// CreateItemRequest is the payload for creating a purchase agreement.
// Exactly one of MonthlyPlan/WeeklyPlan is set, matching Plan.
type CreateItemRequest struct {
	IphoneModel string   `json:"IphoneModel"`
	ItemName    string   `json:"ItemName"`
	Capacity    string   `json:"capacity"`
	Plan        PlanType `json:"Plan"`
	DownPayment float64  `json:"downPayment"`
	LoanedAmount float64 `json:"loanedAmount"`
	PhonePrice  float64  `json:"PhonePrice"`
	MonthlyPlan int      `json:"monthlyPlan,omitempty"`
	WeeklyPlan  int      `json:"weeklyPlan,omitempty"`
	UserEmail   string   `json:"UserEmail"`
}

// ReceiptItem is a payment receipt uploaded by a customer.
type ReceiptItem struct {
	ID        string  `json:"_id"`
	Payment   string  `json:"payment,omitempty"`
	Amount    float64 `json:"amount"`
	FileURL   string  `json:"fileUrl"`
	FileType  string  `json:"fileType"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// PendingReceiptItem is a receipt awaiting approval, annotated with its
// uploader for the admin review table.
type PendingReceiptItem struct {
	ReceiptItem
	User *ReceiptUser `json:"user,omitempty"`
}

// ReceiptUser identifies the customer who uploaded a pending receipt.
type ReceiptUser struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
}

// DashboardPayment is one entry in the dashboard's recent payment list.
type DashboardPayment struct {
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"paymentMethod"`
	PaidAt        string  `json:"paidAt"`
}

// Dashboard summarizes a customer's plan position.
type Dashboard struct {
	TotalAmount       float64            `json:"totalAmount"`
	TotalPaid         float64            `json:"totalPaid"`
	RemainingBalance  float64            `json:"remainingBalance"`
	OwedAmount        float64            `json:"owedAmount,omitempty"`
	Progress          float64            `json:"progress"`
	NextPaymentDue    string             `json:"nextPaymentDue"`
	NextPaymentAmount float64            `json:"nextPaymentAmount"`
	PlanStatus        string             `json:"planStatus"`
	RecentPayments    []DashboardPayment `json:"recentPayments"`
}

// SuperAdminUser is an account row in the super-admin user table.
type SuperAdminUser struct {
	ID             string   `json:"_id"`
	FullName       string   `json:"fullName,omitempty"`
	Email          string   `json:"email,omitempty"`
	Role           string   `json:"role"`
	CreatedByAdmin *Creator `json:"createdByAdmin,omitempty"`
	CreatedUsers   []string `json:"createdUsers,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
	UpdatedAt      string   `json:"updatedAt,omitempty"`
}

// Creator identifies the admin that created an account.
type Creator struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// SuperAdminUserWithItems joins a user with their purchase agreements.
type SuperAdminUserWithItems struct {
	SuperAdminUser
	EasyBoughtItems []EasyBoughtItem `json:"easyBoughtItems"`
}

// LoginStats counts sessions by role.
type LoginStats struct {
	UsersLoggedIn       int `json:"usersLoggedIn"`
	AdminsLoggedIn      int `json:"adminsLoggedIn"`
	SuperAdminsLoggedIn int `json:"superAdminsLoggedIn"`
	TotalLoggedIn       int `json:"totalLoggedIn"`
}

// CatalogModel is one sellable device with its pricing configuration.
type CatalogModel struct {
	Model                 string             `json:"model"`
	Capacities            []string           `json:"capacities"`
	PricesByCapacity      map[string]float64 `json:"pricesByCapacity"`
	AllowedPlans          []PlanType         `json:"allowedPlans"`
	DownPaymentPercentage float64            `json:"downPaymentPercentage"`
	ImageURL              string             `json:"imageUrl,omitempty"`
}

// PlanRules holds the valid installment durations and their markup
// multipliers, keyed by the duration rendered as a string.
type PlanRules struct {
	MonthlyDurations         []int              `json:"monthlyDurations"`
	WeeklyDurations          []int              `json:"weeklyDurations"`
	MonthlyMarkupMultipliers map[string]float64 `json:"monthlyMarkupMultipliers"`
	WeeklyMarkupMultipliers  map[string]float64 `json:"weeklyMarkupMultipliers"`
}

// Catalog is the device catalog plus plan rules served to both admin item
// creation and the public request form.
type Catalog struct {
	Models    []CatalogModel `json:"models"`
	PlanRules PlanRules      `json:"planRules"`
}

// PublicRequest is a lead submitted through the public request form.
type PublicRequest struct {
	RequestID       string   `json:"requestId"`
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	IphoneModel     string   `json:"iphoneModel"`
	Capacity        string   `json:"capacity"`
	Plan            PlanType `json:"plan"`
	Status          string   `json:"status"`
	RejectionReason string   `json:"rejectionReason,omitempty"`
	CreatedAt       string   `json:"createdAt,omitempty"`
}

// CreatePublicRequest is the payload for submitting a public lead. The
// anonymous id links repeat submissions from the same unauthenticated
// visitor.
type CreatePublicRequest struct {
	FullName    string   `json:"fullName"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	IphoneModel string   `json:"iphoneModel"`
	Capacity    string   `json:"capacity"`
	Plan        PlanType `json:"plan"`
	AnonymousID string   `json:"anonymousId"`
}

// ConvertPublicRequest is the payload for turning an approved lead into a
// purchase agreement.
type ConvertPublicRequest struct {
	UserEmail   string  `json:"userEmail"`
	PhonePrice  float64 `json:"phonePrice"`
	DownPayment float64 `json:"downPayment"`
	MonthlyPlan int     `json:"monthlyPlan,omitempty"`
	WeeklyPlan  int     `json:"weeklyPlan,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

// PublicRequestList pairs the request rows with server-side pagination.
type PublicRequestList struct {
	Requests   []PublicRequest
	Pagination *Pagination
}

// Pagination is the server's paging metadata for list endpoints.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Profile is the account detail shown on the profile page.
type Profile struct {
	ID        string `json:"_id"`
	FullName  string `json:"fullName,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}
