// Package seed loads a small demo data set for a cleaning business.
package seed

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/domain/booking"
	"crm-service/internal/domain/catalog"
	"crm-service/internal/domain/client"
	"crm-service/internal/domain/job"
	"crm-service/internal/domain/lead"
	"crm-service/internal/domain/message"
	"crm-service/internal/pkg/types"

	"go.uber.org/zap"
)

type ClientStore interface {
	Create(ctx context.Context, c *client.Client) error
	Truncate(ctx context.Context) error
}

type LeadStore interface {
	Create(ctx context.Context, l *lead.Lead) error
	Truncate(ctx context.Context) error
}

type ServiceStore interface {
	Create(ctx context.Context, s *catalog.Service) error
	Truncate(ctx context.Context) error
}

type JobStore interface {
	Create(ctx context.Context, j *job.Job) error
}

type BookingStore interface {
	Create(ctx context.Context, b *booking.Booking) error
}

type MessageStore interface {
	Create(ctx context.Context, m *message.Message) error
}

// Stores groups the repositories the seeder writes to.
type Stores struct {
	Clients  ClientStore
	Leads    LeadStore
	Services ServiceStore
	Jobs     JobStore
	Bookings BookingStore
	Messages MessageStore
}

// Summary counts the records inserted per table.
type Summary struct {
	Services int
	Clients  int
	Leads    int
	Jobs     int
	Bookings int
	Messages int
}

type Seeder struct {
	stores Stores
	now    func() time.Time
	logger *zap.Logger
}

func NewSeeder(stores Stores, logger *zap.Logger) *Seeder {
	return &Seeder{stores: stores, now: time.Now, logger: logger}
}

// Reset empties clients (and, through cascades, their jobs, bookings,
// messages and follow-ups), leads and services.
func (s *Seeder) Reset(ctx context.Context) error {
	if err := s.stores.Clients.Truncate(ctx); err != nil {
		return err
	}
	if err := s.stores.Leads.Truncate(ctx); err != nil {
		return err
	}
	if err := s.stores.Services.Truncate(ctx); err != nil {
		return err
	}
	s.logger.Info("existing data cleared")
	return nil
}

// Run inserts the demo data set. Dates are relative to now.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	sum := &Summary{}

	for _, svc := range services() {
		if err := s.stores.Services.Create(ctx, svc); err != nil {
			return sum, fmt.Errorf("seed service %q: %w", svc.Name, err)
		}
		sum.Services++
	}

	clients := clients()
	for _, c := range clients {
		if err := s.stores.Clients.Create(ctx, c); err != nil {
			return sum, fmt.Errorf("seed client %q: %w", c.Name, err)
		}
		sum.Clients++
	}

	for _, l := range leads() {
		if err := s.stores.Leads.Create(ctx, l); err != nil {
			return sum, fmt.Errorf("seed lead %q: %w", l.Name, err)
		}
		sum.Leads++
	}

	for _, j := range jobs(clients, today, tomorrow) {
		if err := s.stores.Jobs.Create(ctx, j); err != nil {
			return sum, fmt.Errorf("seed job: %w", err)
		}
		sum.Jobs++
	}

	for _, b := range bookings(clients, tomorrow) {
		if err := s.stores.Bookings.Create(ctx, b); err != nil {
			return sum, fmt.Errorf("seed booking: %w", err)
		}
		sum.Bookings++
	}

	for _, m := range messages(clients, now) {
		if err := s.stores.Messages.Create(ctx, m); err != nil {
			return sum, fmt.Errorf("seed message: %w", err)
		}
		sum.Messages++
	}

	s.logger.Info("database seeded",
		zap.Int("services", sum.Services),
		zap.Int("clients", sum.Clients),
		zap.Int("leads", sum.Leads),
		zap.Int("jobs", sum.Jobs),
		zap.Int("bookings", sum.Bookings),
		zap.Int("messages", sum.Messages),
	)
	return sum, nil
}

func services() []*catalog.Service {
	return []*catalog.Service{
		{Name: "Regular Cleaning", Description: "Standard house cleaning service", BasePrice: 120, EstimatedDuration: 120, IsActive: true},
		{Name: "Deep Cleaning", Description: "Thorough deep cleaning service", BasePrice: 250, EstimatedDuration: 240, IsActive: true},
		{Name: "Move-out Cleaning", Description: "Complete cleaning for move-out", BasePrice: 300, EstimatedDuration: 300, IsActive: true},
		{Name: "Office Cleaning", Description: "Commercial office cleaning", BasePrice: 180, EstimatedDuration: 180, IsActive: true},
	}
}

func clients() []*client.Client {
	mk := func(name, email, phone, address, notes string, tags ...string) *client.Client {
		return &client.Client{
			Name:    name,
			Email:   email,
			Phone:   phone,
			Address: address,
			Tags:    tags,
			Status:  client.StatusActive,
			Notes:   notes,
		}
	}
	return []*client.Client{
		mk("Sarah Johnson", "sarah@example.com", "(555) 123-4567", "123 Oak Street, Downtown",
			"Prefers morning appointments. Has two cats.", "VIP", "Recurring"),
		mk("Mike Chen", "mike@example.com", "(555) 234-5678", "456 Pine Avenue, Midtown",
			"Has a dog that needs to be contained during service.", "Pet Owner"),
		mk("Emma Davis", "emma@example.com", "(555) 345-6789", "789 Elm Drive, Suburbs",
			"New client, very particular about eco-friendly products.", "New Client"),
		mk("John Smith", "john@example.com", "(555) 456-7890", "321 Maple Street, Downtown",
			"Bi-weekly service client.", "Regular"),
		mk("Alice Brown", "alice@example.com", "(555) 567-8901", "654 Cedar Lane, Uptown",
			"Office cleaning client.", "Commercial"),
	}
}

func leads() []*lead.Lead {
	addr := func(s string) *string { return &s }
	return []*lead.Lead{
		{Name: "Jennifer Williams", Email: "jennifer@example.com", Phone: "(555) 678-9012",
			Address: addr("987 Birch Road, Suburbs"), Service: "Deep Cleaning", Source: "Website",
			Status: lead.StatusNew, Value: 275, Notes: "Interested in monthly deep cleaning service."},
		{Name: "Robert Taylor", Email: "robert@example.com", Phone: "(555) 789-0123",
			Address: addr("147 Willow Ave, Downtown"), Service: "Regular Cleaning", Source: "Referral",
			Status: lead.StatusContacted, Value: 150, Notes: "Referred by Sarah Johnson. Needs weekly service."},
		{Name: "Lisa Anderson", Email: "lisa@example.com", Phone: "(555) 890-1234",
			Address: addr("258 Spruce St, Midtown"), Service: "Move-out Cleaning", Source: "Google Ads",
			Status: lead.StatusProposal, Value: 320, Notes: "Moving out next month, needs thorough cleaning."},
	}
}

func jobs(c []*client.Client, today, tomorrow time.Time) []*job.Job {
	yesterday := today.AddDate(0, 0, -1)
	completedAt := yesterday.Add(12 * time.Hour)
	actual := types.Int(110)

	return []*job.Job{
		{ClientID: c[0].ID, Service: "Regular Cleaning", Description: "Weekly cleaning service",
			Address: c[0].Address, ScheduledDate: today, ScheduledTime: "09:00", EstimatedDuration: 120,
			Status: job.StatusScheduled, Cost: 120,
			Materials: []string{"All-purpose cleaner", "Glass cleaner", "Microfiber cloths"},
			Staff:     []string{"Maria Rodriguez"}, Photos: []string{}, Notes: "Regular weekly appointment"},
		{ClientID: c[1].ID, Service: "Deep Cleaning", Description: "Monthly deep cleaning",
			Address: c[1].Address, ScheduledDate: today, ScheduledTime: "14:00", EstimatedDuration: 240,
			Status: job.StatusInProgress, Cost: 250, Tips: 25,
			Materials: []string{"Heavy-duty cleaner", "Scrub brushes", "Vacuum"},
			Staff:     []string{"Ana Martinez", "Lisa Thompson"}, Photos: []string{}, Notes: "Deep clean including appliances"},
		{ClientID: c[2].ID, Service: "Regular Cleaning", Description: "Bi-weekly cleaning",
			Address: c[2].Address, ScheduledDate: tomorrow, ScheduledTime: "10:30", EstimatedDuration: 120,
			Status: job.StatusScheduled, Cost: 120,
			Materials: []string{"Eco-friendly cleaners", "Microfiber cloths"},
			Staff:     []string{"Maria Rodriguez"}, Photos: []string{}, Notes: "Use only eco-friendly products"},
		{ClientID: c[3].ID, Service: "Regular Cleaning", Description: "Completed job",
			Address: c[3].Address, ScheduledDate: yesterday, ScheduledTime: "11:00", EstimatedDuration: 120,
			ActualDuration: &actual, Status: job.StatusCompleted, Cost: 120, Tips: 15,
			Materials: []string{"Standard cleaning supplies"},
			Staff:     []string{"Lisa Thompson"}, Photos: []string{}, Notes: "Job completed successfully",
			CompletedAt: &completedAt},
	}
}

func bookings(c []*client.Client, tomorrow time.Time) []*booking.Booking {
	return []*booking.Booking{
		{ClientID: c[4].ID, Service: "Office Cleaning", Date: tomorrow, Time: "08:00", Duration: 180,
			Staff: []string{"Ana Martinez", "Lisa Thompson"}, Address: c[4].Address, Phone: c[4].Phone,
			Status: booking.StatusPending, EstimatedCost: 180, Notes: "Office cleaning - needs confirmation"},
		{ClientID: c[0].ID, Service: "Deep Cleaning", Date: tomorrow.AddDate(0, 0, 1), Time: "13:00", Duration: 240,
			Staff: []string{"Maria Rodriguez", "Ana Martinez"}, Address: c[0].Address, Phone: c[0].Phone,
			Status: booking.StatusConfirmed, EstimatedCost: 250, Notes: "Monthly deep cleaning session"},
	}
}

func messages(c []*client.Client, now time.Time) []*message.Message {
	read := func(at time.Time) *time.Time { return &at }
	return []*message.Message{
		{ClientID: c[0].ID, Type: message.TypeSMS, Direction: message.DirectionOutbound,
			Content: "Hi Sarah! Your cleaning is scheduled for tomorrow at 9 AM. Our team will arrive on time. Thank you!",
			Status:  message.StatusDelivered, SentAt: now.Add(-time.Hour), DeliveredAt: read(now.Add(-time.Hour))},
		{ClientID: c[0].ID, Type: message.TypeSMS, Direction: message.DirectionInbound,
			Content: "Perfect! Thank you for the reminder. See you tomorrow!",
			Status:  message.StatusRead, SentAt: now.Add(-30 * time.Minute), ReadAt: read(now.Add(-25 * time.Minute))},
		{ClientID: c[1].ID, Type: message.TypeSMS, Direction: message.DirectionInbound,
			Content: "Hi, can we reschedule today's appointment to 2 PM instead of 11 AM?",
			Status:  message.StatusRead, SentAt: now.Add(-2 * time.Hour), ReadAt: read(now.Add(-115 * time.Minute))},
		{ClientID: c[1].ID, Type: message.TypeSMS, Direction: message.DirectionOutbound,
			Content: "Absolutely! I've updated your appointment to 2 PM today. Thanks for letting us know!",
			Status:  message.StatusDelivered, SentAt: now.Add(-115 * time.Minute), DeliveredAt: read(now.Add(-115 * time.Minute))},
	}
}
