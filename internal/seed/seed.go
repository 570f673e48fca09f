// Package seed holds the demo dataset the memory stores start with.
package seed

import (
	"time"

	clientdomain "github.com/itjpay/billing-dashboard/internal/clients/domain"
	"github.com/itjpay/billing-dashboard/internal/developers"
	notifdomain "github.com/itjpay/billing-dashboard/internal/notifications/domain"
	paydomain "github.com/itjpay/billing-dashboard/internal/payments/domain"
	plandomain "github.com/itjpay/billing-dashboard/internal/plans/domain"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Projects() []projdomain.Project {
	return []projdomain.Project{
		{ID: "1", Name: "SaaS Platform", Description: "Customer portal for SaaS subscription management", Status: projdomain.StatusActive, ClientCount: 45, SubscriptionCount: 38, Date: day(2023, time.March, 14)},
		{ID: "2", Name: "E-commerce API", Description: "Payment processing API for e-commerce platform", Status: projdomain.StatusActive, ClientCount: 157, SubscriptionCount: 142, Date: day(2023, time.January, 22)},
		{ID: "3", Name: "Mobile App Payments", Description: "In-app purchase system for mobile application", Status: projdomain.StatusInactive, ClientCount: 12, SubscriptionCount: 8, Date: day(2022, time.September, 5)},
		{ID: "4", Name: "Membership Site", Description: "Recurring billing for membership-based website", Status: projdomain.StatusActive, ClientCount: 78, SubscriptionCount: 65, Date: day(2022, time.November, 18)},
	}
}

func Plans() []plandomain.Plan {
	return []plandomain.Plan{
		{ID: "101", ProjectID: "1", Name: "Basic SaaS Plan", Description: "Entry-level plan for SaaS users", Price: 29, Frequency: plandomain.FrequencyMonthly, Status: plandomain.StatusActive, Features: []string{"10 Projects", "5GB Storage", "Basic Support"}, Subscribers: 45},
		{ID: "102", ProjectID: "1", Name: "Pro SaaS Plan", Description: "Advanced features for SaaS professionals", Price: 99, Frequency: plandomain.FrequencyMonthly, Status: plandomain.StatusActive, Features: []string{"Unlimited Projects", "20GB Storage", "Priority Support"}, Subscribers: 28},
		{ID: "201", ProjectID: "2", Name: "API Starter", Description: "Basic API access for e-commerce", Price: 49, Frequency: plandomain.FrequencyMonthly, Status: plandomain.StatusActive, Features: []string{"100k API calls", "Basic Analytics", "Email Support"}, Subscribers: 87},
		{ID: "202", ProjectID: "2", Name: "API Business", Description: "Enhanced API access for growing businesses", Price: 199, Frequency: plandomain.FrequencyMonthly, Status: plandomain.StatusActive, Features: []string{"1M API calls", "Advanced Analytics", "24/7 Support"}, Subscribers: 55},
		{ID: "301", ProjectID: "3", Name: "Mobile Basic", Description: "Basic in-app purchase support", Price: 19, Frequency: plandomain.FrequencyMonthly, Status: plandomain.StatusInactive, Features: []string{"Basic Integration", "Standard Support", "Simple Analytics"}, Subscribers: 12},
		{ID: "401", ProjectID: "4", Name: "Membership Lite", Description: "Basic membership site support", Price: 39, Frequency: plandomain.FrequencyMonthly, Status: plandomain.StatusActive, Features: []string{"Member Management", "Basic Billing", "Email Support"}, Subscribers: 45},
		{ID: "402", ProjectID: "4", Name: "Membership Pro", Description: "Advanced membership features", Price: 129, Frequency: plandomain.FrequencyMonthly, Status: plandomain.StatusActive, Features: []string{"Unlimited Members", "Advanced Billing", "Priority Support"}, Subscribers: 33},
	}
}

// Clients is relative to now because the demo data speaks in "2 days ago" terms.
func Clients(now time.Time) []clientdomain.Client {
	ago := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}
	const dayDur = 24 * time.Hour
	return []clientdomain.Client{
		{ID: "11", ProjectID: "1", Name: "John Smith", Email: "john.smith@example.com", Status: clientdomain.StatusActive, Plan: "Pro SaaS Plan", PlanID: "102", Spent: 594, LastPayment: ago(2 * dayDur)},
		{ID: "12", ProjectID: "1", Name: "Lisa Johnson", Email: "lisa.johnson@example.com", Status: clientdomain.StatusActive, Plan: "Basic SaaS Plan", PlanID: "101", Spent: 174, LastPayment: ago(7 * dayDur)},
		{ID: "21", ProjectID: "2", Name: "Robert Wilson", Email: "robert.wilson@example.com", Status: clientdomain.StatusActive, Plan: "API Business", PlanID: "202", Spent: 1194, LastPayment: ago(3 * dayDur)},
		{ID: "22", ProjectID: "2", Name: "Maria Garcia", Email: "maria.garcia@example.com", Status: clientdomain.StatusInactive, Plan: "API Starter", PlanID: "201", Spent: 245, LastPayment: ago(60 * dayDur)},
		{ID: "31", ProjectID: "3", Name: "David Lee", Email: "david.lee@example.com", Status: clientdomain.StatusInactive, Plan: "Mobile Basic", PlanID: "301", Spent: 57, LastPayment: ago(90 * dayDur)},
		{ID: "41", ProjectID: "4", Name: "Sarah Miller", Email: "sarah.miller@example.com", Status: clientdomain.StatusActive, Plan: "Membership Pro", PlanID: "402", Spent: 774, LastPayment: ago(5 * dayDur)},
		{ID: "42", ProjectID: "4", Name: "Kevin Brown", Email: "kevin.brown@example.com", Status: clientdomain.StatusActive, Plan: "Membership Lite", PlanID: "401", Spent: 117, LastPayment: ago(14 * dayDur)},
	}
}

func Payments() []paydomain.Payment {
	return []paydomain.Payment{
		{ID: "INV-001", Client: "John Smith", Plan: "Pro Plan", Amount: 99.00, Status: paydomain.StatusSuccessful, Method: "Credit Card", Date: day(2023, time.July, 14), ProjectID: "1", ProjectName: "SaaS Platform"},
		{ID: "INV-002", Client: "Jane Cooper", Plan: "Team Plan", Amount: 249.00, Status: paydomain.StatusSuccessful, Method: "PayPal", Date: day(2023, time.July, 12), ProjectID: "3", ProjectName: "Mobile App Payments"},
		{ID: "INV-003", Client: "Robert Johnson", Plan: "Basic Plan", Amount: 29.00, Status: paydomain.StatusFailed, Method: "Credit Card", Date: day(2023, time.July, 10), ProjectID: "1", ProjectName: "SaaS Platform"},
		{ID: "INV-004", Client: "Emily Davis", Plan: "Enterprise Plan", Amount: 999.00, Status: paydomain.StatusSuccessful, Method: "Bank Transfer", Date: day(2023, time.July, 5), ProjectID: "2", ProjectName: "E-commerce API"},
		{ID: "INV-005", Client: "Michael Wilson", Plan: "Pro Plan", Amount: 99.00, Status: paydomain.StatusPending, Method: "Credit Card", Date: day(2023, time.July, 1), ProjectID: "3", ProjectName: "Mobile App Payments"},
		{ID: "INV-006", Client: "Sarah Johnson", Plan: "Team Plan", Amount: 249.00, Status: paydomain.StatusSuccessful, Method: "PayPal", Date: day(2023, time.June, 28), ProjectID: "1", ProjectName: "SaaS Platform"},
		{ID: "INV-007", Client: "James Brown", Plan: "Basic Plan", Amount: 29.00, Status: paydomain.StatusFailed, Method: "Credit Card", Date: day(2023, time.June, 25), ProjectID: "2", ProjectName: "E-commerce API"},
		{ID: "INV-008", Client: "Jennifer Wilson", Plan: "Pro Plan", Amount: 99.00, Status: paydomain.StatusSuccessful, Method: "PayPal", Date: day(2023, time.June, 20), ProjectID: "3", ProjectName: "Mobile App Payments"},
	}
}

func Notifications(now time.Time) []notifdomain.Notification {
	ptr := func(s string) *string { return &s }
	return []notifdomain.Notification{
		{ID: "1", Title: "New subscription", Message: "Client John Smith subscribed to Pro Plan.", Type: notifdomain.TypeInfo, Read: false, Date: now.Add(-10 * time.Minute), ProjectID: ptr("1"), ProjectName: ptr("SaaS Platform")},
		{ID: "2", Title: "Payment failed", Message: "Payment for client Jane Doe failed.", Type: notifdomain.TypeError, Read: false, Date: now.Add(-2 * time.Hour), ProjectID: ptr("3"), ProjectName: ptr("Mobile App Payments")},
		{ID: "3", Title: "Subscription renewed", Message: "Client Robert Johnson renewed Team Plan subscription.", Type: notifdomain.TypeSuccess, Read: true, Date: now.Add(-24 * time.Hour), ProjectID: ptr("1"), ProjectName: ptr("SaaS Platform")},
		{ID: "4", Title: "Subscription expiring soon", Message: "Client Emily Davis's subscription expires in 3 days.", Type: notifdomain.TypeWarning, Read: false, Date: now.Add(-48 * time.Hour), ProjectID: ptr("2"), ProjectName: ptr("E-commerce API")},
		{ID: "5", Title: "New client added", Message: "Michael Wilson was added as a client.", Type: notifdomain.TypeInfo, Read: true, Date: now.Add(-72 * time.Hour), ProjectID: ptr("3"), ProjectName: ptr("Mobile App Payments")},
		{ID: "6", Title: "Payment received", Message: "Payment of $249.00 received from Sarah Johnson.", Type: notifdomain.TypeSuccess, Read: true, Date: now.Add(-7 * 24 * time.Hour), ProjectID: ptr("1"), ProjectName: ptr("SaaS Platform")},
		{ID: "7", Title: "System update", Message: "The system will be updated on July 15, 2023.", Type: notifdomain.TypeInfo, Read: true, Date: now.Add(-7*24*time.Hour - time.Minute)},
	}
}

// Demo keys; the production one is what the public API examples use.
const (
	DemoProdKey = "itj_prod_4f7kq2mz8w3xv6tn5bj2ra7dc9he4ypu"
	DemoDevKey  = "itj_dev_8n2wq5rk3vt7mz4xb6jc2ha9de5fyp3g"
	DemoTestKey = "itj_test_2k9vm4qx7wb3nz6tr5jh8ca2de4fyu7p"
)

func APIKeys(now time.Time) []developers.APIKey {
	ago := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}
	return []developers.APIKey{
		{ID: "1", Name: "Production Key", Key: DemoProdKey, Created: day(2023, time.July, 14), LastUsed: ago(2 * time.Hour), Status: developers.StatusActive, Environment: developers.EnvProduction},
		{ID: "2", Name: "Development Key", Key: DemoDevKey, Created: day(2023, time.June, 20), LastUsed: ago(24 * time.Hour), Status: developers.StatusActive, Environment: developers.EnvDevelopment},
		{ID: "3", Name: "Test Key", Key: DemoTestKey, Created: day(2023, time.May, 5), LastUsed: ago(30 * 24 * time.Hour), Status: developers.StatusInactive, Environment: developers.EnvTest},
	}
}

func Webhooks() []developers.Webhook {
	return []developers.Webhook{
		{ID: "1", URL: "https://example.com/webhooks/payments", Events: []string{developers.EventPaymentSuccess, developers.EventPaymentFailed}, Created: day(2023, time.July, 10), Status: developers.StatusActive},
		{ID: "2", URL: "https://example.com/webhooks/subscriptions", Events: []string{developers.EventSubscriptionCreated}, Created: day(2023, time.June, 15), Status: developers.StatusActive},
		{ID: "3", URL: "https://example.com/webhooks/clients", Events: []string{developers.EventClientCreated}, Created: day(2023, time.May, 20), Status: developers.StatusInactive},
	}
}
