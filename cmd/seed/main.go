package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/aiagencydirectory/api/internal/config"
	"github.com/aiagencydirectory/api/internal/directory"
	mongostore "github.com/aiagencydirectory/api/internal/infrastructure/mongo"
)

type seedOptions struct {
	agencyCount     int
	pendingCount    int
	ownerCount      int
	newsletterCount int
	dropCollections bool
	randomSeed      int64
}

func main() {
	opts := parseFlags()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	db := client.Database(cfg.MongoDatabase)

	if opts.dropCollections {
		dropAll(ctx, db, cfg)
		log.Printf("dropped existing collections")
	}

	if err := ensureIndexes(ctx, db, cfg); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))

	users := generateUsers(rng, opts.ownerCount)
	if err := insertMany(ctx, db.Collection(cfg.UserCollection), toAnySlice(users)); err != nil {
		log.Fatalf("failed to insert users: %v", err)
	}

	agencies := generateAgencies(rng, users, opts.agencyCount, opts.pendingCount)
	if err := insertMany(ctx, db.Collection(cfg.AgencyCollection), toAnySlice(agencies)); err != nil {
		log.Fatalf("failed to insert agencies: %v", err)
	}

	newsletter := generateNewsletterSignups(rng, opts.newsletterCount)
	if err := insertMany(ctx, db.Collection(cfg.NewsletterCollection), toAnySlice(newsletter)); err != nil {
		log.Fatalf("failed to insert newsletter signups: %v", err)
	}

	searches := generateSearchCounts(rng)
	if err := insertMany(ctx, db.Collection(cfg.SearchCollection), toAnySlice(searches)); err != nil {
		log.Fatalf("failed to insert search counts: %v", err)
	}

	notifications := generateNotifications(agencies)
	if err := insertMany(ctx, db.Collection(cfg.NotificationCollection), toAnySlice(notifications)); err != nil {
		log.Fatalf("failed to insert notifications: %v", err)
	}

	log.Printf("seed complete: agencies=%d users=%d newsletter=%d searches=%d notifications=%d",
		len(agencies), len(users), len(newsletter), len(searches), len(notifications))
	log.Printf("mongo: %s / %s", cfg.MongoURI, cfg.MongoDatabase)
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.IntVar(&opts.agencyCount, "agencies", 20, "number of approved agencies to generate")
	flag.IntVar(&opts.pendingCount, "pending", 4, "number of pending submissions to generate")
	flag.IntVar(&opts.ownerCount, "owners", 8, "number of owner accounts to generate")
	flag.IntVar(&opts.newsletterCount, "newsletter", 15, "number of newsletter signups to generate")
	flag.BoolVar(&opts.dropCollections, "drop", true, "drop existing collections before inserting")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "random seed for reproducible runs")
	flag.Parse()

	if opts.agencyCount <= 0 {
		log.Fatal("agencies must be at least 1")
	}
	if opts.ownerCount <= 0 {
		log.Fatal("owners must be at least 1")
	}
	if opts.pendingCount < 0 {
		opts.pendingCount = 0
	}
	if opts.newsletterCount < 0 {
		opts.newsletterCount = 0
	}
	return opts
}

func dropAll(ctx context.Context, db *mongo.Database, cfg config.Config) {
	for _, name := range []string{
		cfg.AgencyCollection, cfg.UserCollection, cfg.NotificationCollection,
		cfg.NewsletterCollection, cfg.SearchCollection,
	} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			log.Printf("WARN: failed to drop collection %s: %v", name, err)
		}
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database, cfg config.Config) error {
	agencyIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "isApproved", Value: 1}, {Key: "dateCreated", Value: -1}},
			Options: options.Index().SetName("idx_agency_approved_created"),
		},
		{
			Keys:    bson.D{{Key: "ownerUserId", Value: 1}},
			Options: options.Index().SetName("idx_agency_owner"),
		},
		{
			Keys:    bson.D{{Key: "industry", Value: 1}},
			Options: options.Index().SetName("idx_agency_industry"),
		},
	}
	if _, err := db.Collection(cfg.AgencyCollection).Indexes().CreateMany(ctx, agencyIndexes); err != nil {
		return err
	}

	if _, err := db.Collection(cfg.UserCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_user_email").SetUnique(true),
	}); err != nil {
		return err
	}

	if _, err := db.Collection(cfg.NewsletterCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_newsletter_email").SetUnique(true),
	}); err != nil {
		return err
	}

	if _, err := db.Collection(cfg.SearchCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "term", Value: 1}},
		Options: options.Index().SetName("uniq_search_term").SetUnique(true),
	}); err != nil {
		return err
	}

	return nil
}

func generateUsers(rng *rand.Rand, ownerCount int) []mongostore.UserDocument {
	now := time.Now().UTC()
	users := make([]mongostore.UserDocument, 0, ownerCount+1)

	users = append(users, mongostore.UserDocument{
		ID:           uuid.NewString(),
		Email:        "admin@example.com",
		Username:     "directory-admin",
		PasswordHash: hashPassword("admin-password"),
		Role:         string(directory.RoleAdmin),
		IsSubscribed: false,
		IsVerified:   true,
		CreatedAt:    now.Add(-400 * 24 * time.Hour),
	})

	for i := 0; i < ownerCount; i++ {
		plan := directory.PlanBasic
		if i%3 == 0 {
			plan = directory.PlanPremium
		}
		users = append(users, mongostore.UserDocument{
			ID:               uuid.NewString(),
			Email:            fmt.Sprintf("owner%d@example.com", i+1),
			Username:         fmt.Sprintf("owner-%d", i+1),
			PasswordHash:     hashPassword(fmt.Sprintf("owner-password-%d", i+1)),
			Role:             string(directory.RoleUser),
			IsSubscribed:     true,
			SubscriptionPlan: string(plan),
			IsVerified:       true,
			CreatedAt:        now.Add(-time.Duration(30+rng.Intn(300)) * 24 * time.Hour),
		})
	}
	return users
}

func generateAgencies(rng *rand.Rand, users []mongostore.UserDocument, approved, pending int) []mongostore.AgencyDocument {
	now := time.Now().UTC()
	owners := users[1:]
	total := approved + pending
	docs := make([]mongostore.AgencyDocument, 0, total)

	for i := 0; i < total; i++ {
		name := agencyNames[i%len(agencyNames)]
		if i >= len(agencyNames) {
			name = fmt.Sprintf("%s %d", name, i/len(agencyNames)+1)
		}
		owner := owners[rng.Intn(len(owners))]
		industry := directory.Industries[rng.Intn(len(directory.Industries))]
		services := pickUnique(rng, directory.Services, 1+rng.Intn(3))
		created := now.Add(-time.Duration(rng.Intn(365)) * 24 * time.Hour)
		isApproved := i < approved
		isFeatured := isApproved && owner.SubscriptionPlan == string(directory.PlanPremium) && rng.Intn(3) == 0

		doc := mongostore.AgencyDocument{
			ID:          primitive.NewObjectID(),
			Name:        name,
			OwnerUserID: owner.ID,
			Industry:    industry,
			Services:    services,
			Description: descriptions[rng.Intn(len(descriptions))],
			Email:       fmt.Sprintf("hello@%s.example.com", slugify(name)),
			Phone:       fmt.Sprintf("+1-555-%04d", rng.Intn(10000)),
			Website:     fmt.Sprintf("https://%s.example.com", slugify(name)),
			IsApproved:  isApproved,
			IsFeatured:  isFeatured,
			DateCreated: created,
		}

		if isApproved {
			doc.Testimonials = generateTestimonials(rng)
			doc.CaseStudies = generateCaseStudies(rng, created)
			doc.Pricings = generatePricings(rng)
		}
		docs = append(docs, doc)
	}
	return docs
}

func generateTestimonials(rng *rand.Rand) []mongostore.TestimonialDocument {
	count := rng.Intn(3)
	if count == 0 {
		return nil
	}
	docs := make([]mongostore.TestimonialDocument, 0, count)
	for i := 0; i < count; i++ {
		docs = append(docs, mongostore.TestimonialDocument{
			ID:       uuid.NewString(),
			Author:   testimonialAuthors[rng.Intn(len(testimonialAuthors))],
			Feedback: testimonialFeedback[rng.Intn(len(testimonialFeedback))],
			Rating:   3 + rng.Intn(3),
		})
	}
	return docs
}

func generateCaseStudies(rng *rand.Rand, agencyCreated time.Time) []mongostore.CaseStudyDocument {
	count := rng.Intn(2)
	if count == 0 {
		return nil
	}
	docs := make([]mongostore.CaseStudyDocument, 0, count)
	for i := 0; i < count; i++ {
		docs = append(docs, mongostore.CaseStudyDocument{
			ID:         uuid.NewString(),
			Title:      caseStudyTitles[rng.Intn(len(caseStudyTitles))],
			Client:     testimonialAuthors[rng.Intn(len(testimonialAuthors))],
			Challenges: "Manual processes slowed fulfilment and introduced errors.",
			Solutions:  "Deployed an automated pipeline with human review checkpoints.",
			Results:    fmt.Sprintf("%d%% reduction in turnaround time within a quarter.", 20+rng.Intn(60)),
			Date:       agencyCreated.Add(time.Duration(rng.Intn(90)) * 24 * time.Hour),
			Link:       "https://example.com/case-studies/" + uuid.NewString(),
		})
	}
	return docs
}

func generatePricings(rng *rand.Rand) []mongostore.PricingDocument {
	if rng.Intn(2) == 0 {
		return nil
	}
	return []mongostore.PricingDocument{
		{
			ID:       uuid.NewString(),
			Plan:     "Starter",
			Features: []string{"Discovery workshop", "One automation workflow", "Email support"},
			Price:    fmt.Sprintf("$%d/mo", 500+rng.Intn(500)),
		},
		{
			ID:       uuid.NewString(),
			Plan:     "Scale",
			Features: []string{"Unlimited workflows", "Dedicated engineer", "Priority support"},
			Price:    fmt.Sprintf("$%d/mo", 2000+rng.Intn(3000)),
		},
	}
}

func generateNewsletterSignups(rng *rand.Rand, count int) []mongostore.NewsletterDocument {
	if count <= 0 {
		return nil
	}
	docs := make([]mongostore.NewsletterDocument, 0, count)
	seen := make(map[string]struct{}, count)
	for len(docs) < count {
		email := fmt.Sprintf("reader%d@example.com", rng.Intn(10000))
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		docs = append(docs, mongostore.NewsletterDocument{
			ID:           primitive.NewObjectID(),
			Email:        email,
			SubscribedAt: time.Now().UTC().Add(-time.Duration(rng.Intn(180*24)) * time.Hour),
		})
	}
	return docs
}

func generateSearchCounts(rng *rand.Rand) []mongostore.SearchCountDocument {
	terms := []string{"chatbots", "crm", "workflow automation", "lead generation", "content creation", "data labeling", "finance"}
	docs := make([]mongostore.SearchCountDocument, 0, len(terms))
	for _, term := range terms {
		docs = append(docs, mongostore.SearchCountDocument{
			ID:    primitive.NewObjectID(),
			Term:  term,
			Count: 1 + rng.Intn(200),
		})
	}
	return docs
}

func generateNotifications(agencies []mongostore.AgencyDocument) []mongostore.NotificationDocument {
	var docs []mongostore.NotificationDocument
	for _, a := range agencies {
		if a.IsApproved {
			continue
		}
		docs = append(docs, mongostore.NotificationDocument{
			ID:        primitive.NewObjectID(),
			Kind:      "submission",
			Message:   "New agency submission: " + a.Name,
			IsRead:    false,
			CreatedAt: a.DateCreated,
		})
	}
	return docs
}

func insertMany(ctx context.Context, col *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := col.InsertMany(ctx, docs)
	return err
}

func toAnySlice[T any](in []T) []interface{} {
	out := make([]interface{}, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}

func pickUnique(rng *rand.Rand, source []string, count int) []string {
	if count >= len(source) {
		cp := make([]string, len(source))
		copy(cp, source)
		return cp
	}
	seen := make(map[int]struct{}, count)
	result := make([]string, 0, count)
	for len(result) < count {
		idx := rng.Intn(len(source))
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		result = append(result, source[idx])
	}
	return result
}

func hashPassword(plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

var (
	agencyNames = []string{
		"Nexus Automation", "BrightPath AI", "Cognivio", "FlowForge Labs", "Atlas Intelligence",
		"Quantum Leap Partners", "Signalcraft", "Orbit Systems", "DeepCurrent", "Vantage AI Studio",
		"Northstar Automations", "Helix Works", "PivotIQ", "Lumen Agency", "Stackwise AI",
		"Cascade Digital", "Modelhouse", "Apex Inference", "Tidewater AI", "Foundry Eleven",
	}

	descriptions = []string{
		"We build production chatbots and retrieval pipelines for mid-market teams.",
		"Full-service automation studio focused on sales and marketing operations.",
		"Boutique consultancy turning manual back-office workflows into automated pipelines.",
		"We design, ship, and maintain custom AI applications end to end.",
		"Data labeling and model evaluation operations for machine learning teams.",
	}

	testimonialAuthors = []string{
		"Harbor Logistics", "Crestline Dental", "Marlow & Finch LLP", "Redwood Outfitters",
		"Stonebridge Capital", "Juniper Retail Group",
	}

	testimonialFeedback = []string{
		"They automated our intake process in six weeks and support has been excellent.",
		"Clear communication, realistic timelines, and the chatbot actually works.",
		"Our reporting workload dropped dramatically after the first engagement.",
		"Professional team that understood our compliance constraints from day one.",
	}

	caseStudyTitles = []string{
		"Automating invoice intake for a regional logistics firm",
		"Deploying a support chatbot across three retail brands",
		"Cutting CRM data entry by 70% with workflow automation",
		"Building a labeling pipeline for a computer vision startup",
	}
)
