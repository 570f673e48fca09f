package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/clients/domain"
	"github.com/itjpay/billing-dashboard/internal/clients/repository"
	"github.com/itjpay/billing-dashboard/internal/export"
	planrepo "github.com/itjpay/billing-dashboard/internal/plans/repository"
	planservice "github.com/itjpay/billing-dashboard/internal/plans/service"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
	projrepo "github.com/itjpay/billing-dashboard/internal/projects/repository"
	projservice "github.com/itjpay/billing-dashboard/internal/projects/service"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *ClientService
	projects *projservice.ProjectService
	plans    *planservice.PlanService
}

func newFixture() fixture {
	projects := projservice.NewProjectService(projrepo.NewMemoryRepository(seed.Projects()))
	plans := planservice.NewPlanService(planrepo.NewMemoryRepository(seed.Plans()), projects)
	svc := NewClientService(repository.NewMemoryRepository(seed.Clients(fixedNow)), plans, projects)
	svc.now = func() time.Time { return fixedNow }
	svc.batchID = func() string { return "b1" }
	return fixture{svc: svc, projects: projects, plans: plans}
}

func TestClientService_Filter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	got, err := f.svc.Filter(ctx, "1", "pro saas")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "John Smith", got[0].Name)

	got, err = f.svc.Filter(ctx, "2", "GARCIA@")
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = f.svc.Filter(ctx, "4", "")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = f.svc.Filter(ctx, "missing", "")
	assert.ErrorIs(t, err, projdomain.ErrNotFound)
}

func TestClientService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("appends exactly one and leaves others untouched", func(t *testing.T) {
		f := newFixture()
		before, err := f.svc.ListByProject(ctx, "1")
		require.NoError(t, err)

		c, err := f.svc.Add(ctx, "1", domain.ClientForm{Name: " Ann ", Email: "ann@example.com", PlanID: "102"})
		require.NoError(t, err)
		assert.Equal(t, "Ann", c.Name)
		assert.Equal(t, "Pro SaaS Plan", c.Plan)
		assert.Equal(t, domain.StatusActive, c.Status)
		assert.Zero(t, c.Spent)
		require.NotNil(t, c.LastPayment)
		assert.True(t, fixedNow.Equal(*c.LastPayment))

		after, err := f.svc.ListByProject(ctx, "1")
		require.NoError(t, err)
		require.Len(t, after, len(before)+1)
		assert.Equal(t, before, after[:len(before)])
		assert.Equal(t, *c, after[len(after)-1])
	})

	t.Run("unknown plan", func(t *testing.T) {
		f := newFixture()
		c, err := f.svc.Add(ctx, "1", domain.ClientForm{Name: "Bo", Email: "bo@example.com", PlanID: "999"})
		require.NoError(t, err)
		assert.Equal(t, domain.UnknownPlanName, c.Plan)
		assert.Equal(t, "999", c.PlanID)
	})

	t.Run("updates counters", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Add(ctx, "1", domain.ClientForm{Name: "Cy", Email: "cy@example.com", PlanID: "101"})
		require.NoError(t, err)

		p, err := f.projects.Get(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, 46, p.ClientCount)
		assert.Equal(t, 39, p.SubscriptionCount)

		plan, err := f.plans.Get(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, 46, plan.Subscribers)
	})

	t.Run("requires name and email", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Add(ctx, "1", domain.ClientForm{Email: "x@example.com"})
		assert.ErrorIs(t, err, domain.ErrNameRequired)
		_, err = f.svc.Add(ctx, "1", domain.ClientForm{Name: "X"})
		assert.ErrorIs(t, err, domain.ErrEmailRequired)
	})
}

func TestClientService_ImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("single row resolves plan", func(t *testing.T) {
		f := newFixture()
		got, err := f.svc.Import(ctx, "1", "clients.csv", strings.NewReader("Name,Email,Plan ID\nJohn Doe,john@example.com,101"))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "John Doe", got[0].Name)
		assert.Equal(t, "Basic SaaS Plan", got[0].Plan)
		assert.Equal(t, "101", got[0].PlanID)
		assert.Zero(t, got[0].Spent)
		assert.Equal(t, fmt.Sprintf("import-%d-b1-1", fixedNow.UnixMilli()), got[0].ID)
	})

	t.Run("n valid rows produce n clients in order", func(t *testing.T) {
		f := newFixture()
		before, _ := f.svc.ListByProject(ctx, "2")

		content := "Name,Email,Plan ID\r\n" +
			"A,a@example.com,201\r\n" +
			"\r\n" +
			"B,b@example.com,nope\r\n" +
			"missing,fields\r\n" +
			" ,blank@example.com,201\r\n" +
			"C,c@example.com,202\r\n"
		got, err := f.svc.Import(ctx, "2", "CLIENTS.CSV", strings.NewReader(content))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"A", "B", "C"}, []string{got[0].Name, got[1].Name, got[2].Name})

		assert.Equal(t, domain.DefaultPlanName, got[1].Plan)
		assert.Equal(t, "201", got[1].PlanID)
		assert.Equal(t, "API Business", got[2].Plan)

		after, _ := f.svc.ListByProject(ctx, "2")
		assert.Len(t, after, len(before)+3)
	})

	t.Run("project without plans falls back to id 1", func(t *testing.T) {
		f := newFixture()
		p, err := f.projects.Create(ctx, "Empty", "")
		require.NoError(t, err)

		got, err := f.svc.Import(ctx, p.ID, "c.csv", strings.NewReader("h\nX,x@example.com,101\n"))
		require.NoError(t, err)
		assert.Equal(t, domain.DefaultPlanID, got[0].PlanID)
		assert.Equal(t, domain.DefaultPlanName, got[0].Plan)
	})

	t.Run("zero valid rows stores nothing", func(t *testing.T) {
		f := newFixture()
		before, _ := f.svc.List(ctx)

		_, err := f.svc.Import(ctx, "1", "c.csv", strings.NewReader("Name,Email,Plan ID\n\n,,\nonly,two\n"))
		assert.ErrorIs(t, err, domain.ErrNoValidClients)

		after, _ := f.svc.List(ctx)
		assert.Equal(t, before, after)
	})
}

func TestClientService_ImportSameMillisecond(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	batches := []string{"aaaa", "aaaa", "bbbb"}
	f.svc.batchID = func() string {
		b := batches[0]
		batches = batches[1:]
		return b
	}
	csv := "Name,Email,Plan ID\nJo,jo@example.com,101\n"

	first, err := f.svc.Import(ctx, "1", "a.csv", strings.NewReader(csv))
	require.NoError(t, err)
	second, err := f.svc.Import(ctx, "1", "b.csv", strings.NewReader(csv))
	require.NoError(t, err, "a colliding batch id is redrawn")

	assert.Equal(t, fmt.Sprintf("import-%d-aaaa-1", fixedNow.UnixMilli()), first[0].ID)
	assert.Equal(t, fmt.Sprintf("import-%d-bbbb-1", fixedNow.UnixMilli()), second[0].ID)

	f.svc.batchID = func() string { return "aaaa" }
	_, err = f.svc.Import(ctx, "1", "c.csv", strings.NewReader(csv))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	all, _ := f.svc.ListByProject(ctx, "1")
	n := 0
	for _, c := range all {
		if c.Email == "jo@example.com" {
			n++
		}
	}
	assert.Equal(t, 2, n)
}

type recordingSink struct {
	ch chan string
}

func (r *recordingSink) Dispatch(ctx context.Context, event string, data any) int {
	switch v := data.(type) {
	case domain.Client:
		r.ch <- event + ":" + v.Name
	case Subscription:
		r.ch <- event + ":" + v.Client + ":" + v.PlanID
	}
	return 1
}

func drain(t *testing.T, ch chan string, n int) []string {
	t.Helper()
	out := make([]string, 0, n)
	for len(out) < n {
		select {
		case e := <-ch:
			out = append(out, e)
		case <-time.After(time.Second):
			t.Fatalf("got %d of %d events: %v", len(out), n, out)
		}
	}
	return out
}

func TestClientService_DispatchesEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("add", func(t *testing.T) {
		f := newFixture()
		sink := &recordingSink{ch: make(chan string, 4)}
		f.svc.WithEvents(sink)

		_, err := f.svc.Add(ctx, "1", domain.ClientForm{Name: "Ann", Email: "ann@example.com", PlanID: "102"})
		require.NoError(t, err)
		assert.Equal(t, []string{"client.created:Ann", "subscription.created:Ann:102"}, drain(t, sink.ch, 2))
	})

	t.Run("import raises one pair per client", func(t *testing.T) {
		f := newFixture()
		sink := &recordingSink{ch: make(chan string, 8)}
		f.svc.WithEvents(sink)

		_, err := f.svc.Import(ctx, "1", "c.csv", strings.NewReader("h\nA,a@example.com,101\nB,b@example.com,102\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"client.created:A", "subscription.created:A:101",
			"client.created:B", "subscription.created:B:102",
		}, drain(t, sink.ch, 4))
	})

	t.Run("rejected input raises nothing", func(t *testing.T) {
		f := newFixture()
		sink := &recordingSink{ch: make(chan string, 2)}
		f.svc.WithEvents(sink)

		_, err := f.svc.Add(ctx, "1", domain.ClientForm{Email: "x@example.com"})
		require.Error(t, err)
		select {
		case e := <-sink.ch:
			t.Fatalf("unexpected event %s", e)
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestClientService_ImportRejects(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Import(ctx, "1", "clients.txt", strings.NewReader("a,b,c"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFile)

	big := bytes.Repeat([]byte("x"), domain.MaxImportSize+1)
	_, err = f.svc.Import(ctx, "1", "clients.csv", bytes.NewReader(big))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	_, err = f.svc.Import(ctx, "missing", "clients.csv", strings.NewReader("h\na,b,c"))
	assert.ErrorIs(t, err, projdomain.ErrNotFound)
}

func TestClientService_ImportXLSX(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, export.Sheet{
		Name:    "Import",
		Headers: []string{"Name", "Email", "Plan ID"},
		Rows: [][]any{
			{"Xena", "xena@example.com", "402"},
			{"", "nobody@example.com", "402"},
			{"Yuri", "yuri@example.com", "401"},
		},
	}))

	got, err := f.svc.Import(ctx, "4", "clients.xlsx", &buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Membership Pro", got[0].Plan)
	assert.Equal(t, "Membership Lite", got[1].Plan)
}

func TestClientService_ExportXLSX(t *testing.T) {
	f := newFixture()

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportXLSX(context.Background(), &buf, "1", "lisa"))

	rows, err := export.ReadFirstSheet(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Lisa Johnson", rows[1][1])
}

func TestParseCSV(t *testing.T) {
	rows := ParseCSV("Name,Email,Plan ID\n  Jo , jo@example.com , 101 ,extra\n")
	require.Len(t, rows, 1)
	assert.Equal(t, ImportRow{Line: 1, Name: "Jo", Email: "jo@example.com", PlanID: "101"}, rows[0])

	assert.Empty(t, ParseCSV("only a header"))
	assert.Empty(t, ParseCSV(""))
}

func TestTemplate(t *testing.T) {
	rows := ParseCSV(string(Template()))
	require.Len(t, rows, 2)
	assert.Equal(t, "plan-1", rows[0].PlanID)
	assert.Equal(t, "plan-2", rows[1].PlanID)
}
