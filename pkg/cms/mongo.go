package cms

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scaduxx/folio/pkg/content"
	"github.com/scaduxx/folio/pkg/errors"
	"github.com/scaduxx/folio/pkg/observability"
)

// MongoConfig configures a [MongoSource].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoSource reads projects from a MongoDB collection, one document per
// project.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoSort orders by manual order, then newest first.
var mongoSort = bson.D{{Key: "order", Value: 1}, {Key: "date", Value: -1}}

// NewMongoSource connects to MongoDB and verifies the connection.
func NewMongoSource(ctx context.Context, cfg MongoConfig) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}
	return &MongoSource{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (m *MongoSource) Name() string { return "mongo" }

// Projects returns every project with a slug. The server sorts by
// {order: 1, date: -1}; a stable re-sort then treats a missing order as 0,
// which MongoDB sorts before every number.
func (m *MongoSource) Projects(ctx context.Context) (projects []content.Project, err error) {
	hooks := observability.CMS()
	hooks.OnQueryStart(ctx, m.Name(), "projects")
	start := time.Now()
	defer func() {
		hooks.OnQueryComplete(ctx, m.Name(), "projects", len(projects), time.Since(start), err)
	}()

	filter := bson.M{"slug": bson.M{"$exists": true, "$ne": ""}}
	cur, err := m.coll.Find(ctx, filter, options.Find().SetSort(mongoSort))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find projects")
	}
	var docs []mongoProject
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read projects")
	}

	projects = make([]content.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, d.toProject())
	}
	content.Sort(projects)
	return projects, nil
}

// Project returns the project with the given slug.
func (m *MongoSource) Project(ctx context.Context, slug string) (content.Project, error) {
	if err := errors.ValidateSlug(slug); err != nil {
		return content.Project{}, err
	}

	var doc mongoProject
	err := m.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return content.Project{}, notFound(slug)
	}
	if err != nil {
		return content.Project{}, errors.Wrap(errors.ErrCodeNetwork, err, "find project %s", slug)
	}
	return doc.toProject(), nil
}

// Upsert writes projects keyed by slug, replacing existing documents.
func (m *MongoSource) Upsert(ctx context.Context, projects []content.Project) (int, error) {
	if err := validateProjects(projects); err != nil {
		return 0, err
	}
	if len(projects) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(projects))
	for _, p := range projects {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"slug": p.Slug}).
			SetReplacement(fromProject(p)).
			SetUpsert(true))
	}
	res, err := m.coll.BulkWrite(ctx, models)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNetwork, err, "write projects")
	}
	n := int(res.UpsertedCount + res.ModifiedCount)
	observability.CMS().OnReload(ctx, m.Name(), n, nil)
	return n, nil
}

// Close disconnects from the server.
func (m *MongoSource) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// mongoProject is the stored document. Dates are BSON datetimes so that the
// server can sort on them.
type mongoProject struct {
	Title       string           `bson:"title"`
	Slug        string           `bson:"slug"`
	Client      string           `bson:"client,omitempty"`
	Date        *time.Time       `bson:"date,omitempty"`
	Order       *float64         `bson:"order,omitempty"`
	AspectRatio float64          `bson:"aspectRatio,omitempty"`
	Image       content.Image    `bson:"image"`
	VideoURL    string           `bson:"videoUrl,omitempty"`
	Intro       string           `bson:"intro,omitempty"`
	Body        []content.Block  `bson:"body,omitempty"`
	Role        string           `bson:"role,omitempty"`
	Credits     []content.Credit `bson:"credits,omitempty"`
	Links       content.Links    `bson:"links"`
	CreatedAt   time.Time        `bson:"createdAt"`
}

func (d mongoProject) toProject() content.Project {
	p := content.Project{
		Title:       d.Title,
		Slug:        d.Slug,
		Client:      d.Client,
		Order:       d.Order,
		AspectRatio: d.AspectRatio,
		Image:       d.Image,
		VideoURL:    d.VideoURL,
		Intro:       d.Intro,
		Body:        d.Body,
		Role:        d.Role,
		Credits:     d.Credits,
		Links:       d.Links,
		CreatedAt:   d.CreatedAt.UTC(),
	}
	if d.Date != nil {
		p.Date = content.Date{Time: d.Date.UTC()}
	}
	fillImage(&p.Image)
	return p
}

func fromProject(p content.Project) mongoProject {
	d := mongoProject{
		Title:       p.Title,
		Slug:        p.Slug,
		Client:      p.Client,
		Order:       p.Order,
		AspectRatio: p.AspectRatio,
		Image:       p.Image,
		VideoURL:    p.VideoURL,
		Intro:       p.Intro,
		Body:        p.Body,
		Role:        p.Role,
		Credits:     p.Credits,
		Links:       p.Links,
		CreatedAt:   p.CreatedAt,
	}
	if !p.Date.IsZero() {
		t := p.Date.Time
		d.Date = &t
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	return d
}
