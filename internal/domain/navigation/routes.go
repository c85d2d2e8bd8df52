package navigation

// Role codes as issued by the authentication service. The set is closed:
// codes outside this list resolve to no routes at all.
const (
	RoleSuperAdmin      = 0
	RoleAdmin           = 1
	RoleManager         = 2
	RoleProductEngineer = 3
	RoleDelivery        = 4
	RoleLabTechnician   = 5
	RoleLimitedEmployee = 10
)

// Attendance type values carried in the admin session. They select which
// tracker screen an admin lands on after login.
const (
	AttendanceTypeFace     = "face_attendance"
	AttendanceTypeLocation = "location"
	AttendanceTypeBoth     = "both"
)

// RouteDescriptor describes one navigable screen for a role. View is an
// opaque screen identifier resolved by the consuming front end.
type RouteDescriptor struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Exact bool   `json:"exact"`
	View  string `json:"view"`
}

// BreadcrumbEntry is one element of the trail derived from the current URL
// path. Active is true only for the deepest matching prefix.
type BreadcrumbEntry struct {
	Pathname string `json:"pathname"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
}

// RoleRoutes maps each role code to its route list. Each list is authored
// independently and reproduced as-is: lists are not subsets of one another,
// the manager list carries a second credit report screen that no other role
// has, and the admin list contains two different routes both displayed as
// "Employee Details". Do not dedup or derive one list from another.
var RoleRoutes = map[int][]RouteDescriptor{
	RoleSuperAdmin: {
		{Path: "/", Name: "Home", Exact: true, View: "SuperAdminDashboard"},
		{Path: "/companies", Name: "Companies", View: "CompanyList"},
		{Path: "/companies/:id", Name: "Company Details", View: "CompanyDetails"},
		{Path: "/partners", Name: "Partners", View: "PartnerList"},
		{Path: "/partners/:id", Name: "Partner Details", View: "PartnerDetails"},
		{Path: "/approvals", Name: "Pending Approvals", View: "CompanyApprovals"},
		{Path: "/plans", Name: "Subscription Plans", View: "PlanList"},
	},
	RoleAdmin: {
		{Path: "/", Name: "Home", Exact: true, View: "AdminDashboard"},
		{Path: "/invoices", Name: "Invoices", View: "InvoiceList"},
		{Path: "/invoices/create", Name: "Create Invoice", View: "InvoiceCreate"},
		{Path: "/invoices/:id", Name: "Invoice Details", View: "InvoiceDetails"},
		{Path: "/quotations", Name: "Quotations", View: "QuotationList"},
		{Path: "/products", Name: "Products", View: "ProductList"},
		{Path: "/products/:id", Name: "Product Details", View: "ProductDetails"},
		{Path: "/customers", Name: "Customers", View: "CustomerList"},
		{Path: "/customers/:id", Name: "Customer Details", View: "CustomerDetails"},
		{Path: "/employees", Name: "Employees", View: "EmployeeList"},
		{Path: "/employees/:id", Name: "Employee Details", View: "EmployeeDetails"},
		{Path: "/employees/attendance/:id", Name: "Employee Details", View: "EmployeeAttendance"},
		{Path: "/tracker", Name: "Location Tracker", View: "LocationTracker"},
		{Path: "/selfie-tracker", Name: "Selfie Check-In", View: "SelfieTracker"},
		{Path: "/creditreport", Name: "Credit Report", View: "CreditReport"},
		{Path: "/payments", Name: "Payments", View: "PaymentList"},
		{Path: "/settings", Name: "Company Settings", View: "CompanySettings"},
	},
	RoleManager: {
		{Path: "/", Name: "Home", Exact: true, View: "ManagerDashboard"},
		{Path: "/invoices", Name: "Invoices", View: "InvoiceList"},
		{Path: "/invoices/:id", Name: "Invoice Details", View: "InvoiceDetails"},
		{Path: "/products", Name: "Products", View: "ProductList"},
		{Path: "/customers", Name: "Customers", View: "CustomerList"},
		{Path: "/employees", Name: "Employees", View: "EmployeeList"},
		{Path: "/creditreport", Name: "Credit Report", View: "CreditReport"},
		{Path: "/creditreport2", Name: "Credit Report", View: "CreditReport2"},
		{Path: "/tracker", Name: "Location Tracker", View: "LocationTracker"},
	},
	RoleProductEngineer: {
		{Path: "/", Name: "Home", Exact: true, View: "ProductDashboard"},
		{Path: "/products", Name: "Products", View: "ProductList"},
		{Path: "/products/create", Name: "Create Product", View: "ProductCreate"},
		{Path: "/products/:id", Name: "Product Details", View: "ProductDetails"},
		{Path: "/qc", Name: "Quality Control", View: "QualityControl"},
		{Path: "/tracker", Name: "Location Tracker", View: "LocationTracker"},
	},
	RoleDelivery: {
		{Path: "/", Name: "Home", Exact: true, View: "DeliveryDashboard"},
		{Path: "/challans", Name: "Delivery Challans", View: "ChallanList"},
		{Path: "/challans/:id", Name: "Challan Details", View: "ChallanDetails"},
		{Path: "/tracker", Name: "Location Tracker", View: "LocationTracker"},
	},
	RoleLabTechnician: {
		{Path: "/", Name: "Home", Exact: true, View: "LabDashboard"},
		{Path: "/lab-reports", Name: "Lab Reports", View: "LabReportList"},
		{Path: "/lab-reports/:id", Name: "Lab Report Details", View: "LabReportDetails"},
		{Path: "/tracker", Name: "Location Tracker", View: "LocationTracker"},
	},
	RoleLimitedEmployee: {
		{Path: "/", Name: "Home", Exact: true, View: "EmployeeHome"},
		{Path: "/tracker", Name: "Location Tracker", View: "LocationTracker"},
		{Path: "/my-attendance", Name: "My Attendance", View: "MyAttendance"},
	},
}

// RoleLandings holds the post-login dashboard path per role. The admin role
// is absent on purpose: its landing depends on the session attendance type.
var RoleLandings = map[int]string{
	RoleSuperAdmin:      "/",
	RoleManager:         "/",
	RoleProductEngineer: "/products",
	RoleDelivery:        "/challans",
	RoleLabTechnician:   "/lab-reports",
	RoleLimitedEmployee: "/tracker",
}

// Admin landing paths selected by attendance type.
const (
	LocationTrackerPath = "/tracker"
	SelfieTrackerPath   = "/selfie-tracker"
)
