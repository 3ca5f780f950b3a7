// Package gql exposes the content services over a single GraphQL schema.
package gql

import (
	"errors"
	"strings"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/GunarsK-portfolio/content-service/internal/service"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

var errAuthRequired = errors.New("authentication required")

// Services are the backends resolved against.
type Services struct {
	Posts      service.PostService
	Samples    service.SampleService
	Categories service.CategoryService
	Abouts     service.AboutService
	Users      service.UserService
}

type resolver struct {
	svc    Services
	logger *zap.Logger
}

// NewSchema builds the schema. The acting user is read from the request
// context populated by the auth middleware.
func NewSchema(svc Services, logger *zap.Logger) (graphql.Schema, error) {
	r := &resolver{svc: svc, logger: logger}

	query := graphql.Fields{}
	mutation := graphql.Fields{}

	merge(query, mutation, entryFields[models.Post](r, svc.Posts, "post", "Post"))
	merge(query, mutation, entryFields[models.Sample](r, svc.Samples, "sample", "Sample"))
	merge(query, mutation, r.categoryFields())
	merge(query, mutation, r.aboutFields())
	for name, field := range r.userQueries() {
		query[name] = field
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: query}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: mutation}),
	})
}

type fieldSet struct {
	queries   graphql.Fields
	mutations graphql.Fields
}

func merge(query, mutation graphql.Fields, set fieldSet) {
	for name, field := range set.queries {
		query[name] = field
	}
	for name, field := range set.mutations {
		mutation[name] = field
	}
}

func paginationArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"skip":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: defaultSkip},
		"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: defaultLimit},
	}
}

func withArgs(base graphql.FieldConfigArgument, extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

func idArg() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
	}
}

func entryFields[T any, PT models.EntryModel[T]](r *resolver, svc service.EntryService[T], singular, typeName string) fieldSet {
	objectType := newEntryType(typeName)
	listType := graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(objectType)))
	createInput, updateInput := newEntryInputs(typeName)
	payload := newPayload(typeName, objectType)
	plural := singular + "s"

	toValue := func(item *T) interface{} { return entryValue[T, PT](item) }

	queries := graphql.Fields{
		plural: &graphql.Field{
			Type: listType,
			Args: withArgs(paginationArgs(), graphql.FieldConfigArgument{
				"publishedOnly": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				items, err := svc.List(p.Context, intArg(p, "skip"), intArg(p, "limit"), boolArg(p, "publishedOnly"))
				if err != nil {
					return nil, err
				}
				return listValue(items, toValue), nil
			},
		},
		singular: &graphql.Field{
			Type: objectType,
			Args: idArg(),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				item, err := svc.Get(p.Context, int64Arg(p, "id"))
				if err != nil {
					return nil, err
				}
				return toValue(item), nil
			},
		},
		singular + "BySlug": &graphql.Field{
			Type: objectType,
			Args: graphql.FieldConfigArgument{
				"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				item, err := svc.GetBySlug(p.Context, stringArg(p, "slug"))
				if err != nil {
					return nil, err
				}
				return toValue(item), nil
			},
		},
		plural + "ByAuthor": &graphql.Field{
			Type: listType,
			Args: withArgs(paginationArgs(), graphql.FieldConfigArgument{
				"authorId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				items, err := svc.ListByAuthor(p.Context, int64Arg(p, "authorId"), intArg(p, "skip"), intArg(p, "limit"))
				if err != nil {
					return nil, err
				}
				return listValue(items, toValue), nil
			},
		},
		plural + "ByCategory": &graphql.Field{
			Type: listType,
			Args: withArgs(paginationArgs(), graphql.FieldConfigArgument{
				"categoryId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			}),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				items, err := svc.ListByCategory(p.Context, int64Arg(p, "categoryId"), intArg(p, "skip"), intArg(p, "limit"))
				if err != nil {
					return nil, err
				}
				return listValue(items, toValue), nil
			},
		},
		"search" + typeName + "s": &graphql.Field{
			Type: listType,
			Args: graphql.FieldConfigArgument{
				"query": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				items, err := svc.Search(p.Context, stringArg(p, "query"))
				if err != nil {
					return nil, err
				}
				return listValue(items, toValue), nil
			},
		},
	}

	mutations := graphql.Fields{
		"create" + typeName: &graphql.Field{
			Type: graphql.NewNonNull(payload),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createInput)},
			},
			Resolve: r.withActor(func(p graphql.ResolveParams, actor service.Actor) (interface{}, string, error) {
				in := inputArg(p)
				item, err := svc.Create(p.Context, actor.UserID, service.EntryInput{
					Title:       stringField(in, "title"),
					Slug:        stringField(in, "slug"),
					Content:     stringField(in, "content"),
					Excerpt:     optStringField(in, "excerpt"),
					CategoryID:  optInt64Field(in, "categoryId"),
					IsPublished: boolField(in, "isPublished"),
				})
				if err != nil {
					return nil, "", err
				}
				return toValue(item), typeName + " created successfully", nil
			}),
		},
		"update" + typeName: &graphql.Field{
			Type: graphql.NewNonNull(payload),
			Args: withArgs(idArg(), graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateInput)},
			}),
			Resolve: r.withActor(func(p graphql.ResolveParams, actor service.Actor) (interface{}, string, error) {
				in := inputArg(p)
				item, err := svc.Update(p.Context, int64Arg(p, "id"), actor, service.EntryUpdate{
					Title:         optStringField(in, "title"),
					Slug:          optStringField(in, "slug"),
					Content:       optStringField(in, "content"),
					Excerpt:       optStringField(in, "excerpt"),
					CategoryID:    optInt64Field(in, "categoryId"),
					ClearCategory: boolField(in, "clearCategory"),
					IsPublished:   optBoolField(in, "isPublished"),
				})
				if err != nil {
					return nil, "", err
				}
				return toValue(item), typeName + " updated successfully", nil
			}),
		},
		"delete" + typeName: &graphql.Field{
			Type: graphql.NewNonNull(payload),
			Args: idArg(),
			Resolve: r.withActor(func(p graphql.ResolveParams, actor service.Actor) (interface{}, string, error) {
				if err := svc.Delete(p.Context, int64Arg(p, "id"), actor); err != nil {
					return nil, "", err
				}
				return nil, typeName + " deleted successfully", nil
			}),
		},
	}

	return fieldSet{queries: queries, mutations: mutations}
}

func (r *resolver) categoryFields() fieldSet {
	payload := newPayload("Category", categoryType)
	categoryInput := func(p graphql.ResolveParams) service.CategoryInput {
		in := inputArg(p)
		return service.CategoryInput{
			Name:        stringField(in, "name"),
			Slug:        stringField(in, "slug"),
			Description: optStringField(in, "description"),
		}
	}

	queries := graphql.Fields{
		"categories": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(categoryType))),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				categories, err := r.svc.Categories.List(p.Context)
				if err != nil {
					return nil, err
				}
				return listValue(categories, categoryValue), nil
			},
		},
		"category": &graphql.Field{
			Type: categoryType,
			Args: idArg(),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				category, err := r.svc.Categories.Get(p.Context, int64Arg(p, "id"))
				if err != nil {
					return nil, err
				}
				return categoryValue(category), nil
			},
		},
	}

	mutations := graphql.Fields{
		"createCategory": &graphql.Field{
			Type: graphql.NewNonNull(payload),
			Args: graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(categoryInputType)},
			},
			Resolve: r.withActor(func(p graphql.ResolveParams, actor service.Actor) (interface{}, string, error) {
				category, err := r.svc.Categories.Create(p.Context, actor, categoryInput(p))
				if err != nil {
					return nil, "", err
				}
				return categoryValue(category), "Category created successfully", nil
			}),
		},
		"updateCategory": &graphql.Field{
			Type: graphql.NewNonNull(payload),
			Args: withArgs(idArg(), graphql.FieldConfigArgument{
				"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(categoryInputType)},
			}),
			Resolve: r.withActor(func(p graphql.ResolveParams, actor service.Actor) (interface{}, string, error) {
				category, err := r.svc.Categories.Update(p.Context, int64Arg(p, "id"), actor, categoryInput(p))
				if err != nil {
					return nil, "", err
				}
				return categoryValue(category), "Category updated successfully", nil
			}),
		},
		"deleteCategory": &graphql.Field{
			Type: graphql.NewNonNull(payload),
			Args: idArg(),
			Resolve: r.withActor(func(p graphql.ResolveParams, actor service.Actor) (interface{}, string, error) {
				if err := r.svc.Categories.Delete(p.Context, int64Arg(p, "id"), actor); err != nil {
					return nil, "", err
				}
				return nil, "Category deleted successfully", nil
			}),
		},
	}

	return fieldSet{queries: queries, mutations: mutations}
}

func (r *resolver) aboutFields() fieldSet {
	payload := newPayload("About", aboutType)
	aboutIDArg := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}

	queries := graphql.Fields{
		"abouts": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(aboutType))),
			Args: paginationArgs(),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				abouts, err := r.svc.Abouts.List(p.Context, intArg(p, "skip"), intArg(p, "limit"))
				if err != nil {
					return nil, err
				}
				return listValue(abouts, aboutValue), nil
			},
		},
		"about": &graphql.Field{
			Type: aboutType,
			Args: idArg(),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				about, err := r.svc.Abouts.Get(p.Context, int64Arg(p, "id"))
				if err != nil {
					return nil, err
				}
				return aboutValue(about), nil
			},
		},
	}

	mutations := graphql.Fields{
		"createAbout": &graphql.Field{
			Type: graphql.NewNonNull(payload),
			Args: graphql.FieldConfigArgument{"aboutId": aboutIDArg},
			Resolve: r.withActor(func(p graphql.ResolveParams, actor service.Actor) (interface{}, string, error) {
				about, err := r.svc.Abouts.Create(p.Context, actor, stringArg(p, "aboutId"))
				if err != nil {
					return nil, "", err
				}
				return aboutValue(about), "About created successfully", nil
			}),
		},
		"updateAbout": &graphql.Field{
			Type: graphql.NewNonNull(payload),
			Args: withArgs(idArg(), graphql.FieldConfigArgument{"aboutId": aboutIDArg}),
			Resolve: r.withActor(func(p graphql.ResolveParams, actor service.Actor) (interface{}, string, error) {
				about, err := r.svc.Abouts.Update(p.Context, int64Arg(p, "id"), actor, stringArg(p, "aboutId"))
				if err != nil {
					return nil, "", err
				}
				return aboutValue(about), "About updated successfully", nil
			}),
		},
		"deleteAbout": &graphql.Field{
			Type: graphql.NewNonNull(payload),
			Args: idArg(),
			Resolve: r.withActor(func(p graphql.ResolveParams, actor service.Actor) (interface{}, string, error) {
				if err := r.svc.Abouts.Delete(p.Context, int64Arg(p, "id"), actor); err != nil {
					return nil, "", err
				}
				return nil, "About deleted successfully", nil
			}),
		},
	}

	return fieldSet{queries: queries, mutations: mutations}
}

func (r *resolver) userQueries() graphql.Fields {
	return graphql.Fields{
		"users": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
			Args: paginationArgs(),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if _, ok := service.ActorFromContext(p.Context); !ok {
					return nil, errAuthRequired
				}
				users, err := r.svc.Users.List(p.Context, intArg(p, "skip"), intArg(p, "limit"))
				if err != nil {
					return nil, err
				}
				return listValue(users, userValue), nil
			},
		},
		"user": &graphql.Field{
			Type: userType,
			Args: idArg(),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if _, ok := service.ActorFromContext(p.Context); !ok {
					return nil, errAuthRequired
				}
				user, err := r.svc.Users.Get(p.Context, int64Arg(p, "id"))
				if err != nil {
					return nil, err
				}
				return userValue(user), nil
			},
		},
		"me": &graphql.Field{
			Type: userType,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				actor, ok := service.ActorFromContext(p.Context)
				if !ok {
					return nil, errAuthRequired
				}
				user, err := r.svc.Users.Get(p.Context, actor.UserID)
				if err != nil {
					return nil, err
				}
				return userValue(user), nil
			},
		},
	}
}

type actorMutation func(p graphql.ResolveParams, actor service.Actor) (result interface{}, message string, err error)

// withActor adapts a mutation so that failures become an unsuccessful
// payload rather than a GraphQL error.
func (r *resolver) withActor(fn actorMutation) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		actor, ok := service.ActorFromContext(p.Context)
		if !ok {
			return r.failure(errAuthRequired), nil
		}
		result, message, err := fn(p, actor)
		if err != nil {
			return r.failure(err), nil
		}
		return success(result, message), nil
	}
}

func success(result interface{}, message string) map[string]interface{} {
	return map[string]interface{}{"result": result, "success": true, "message": message}
}

func (r *resolver) failure(err error) map[string]interface{} {
	return map[string]interface{}{"result": nil, "success": false, "message": r.message(err)}
}

// message hides unexpected errors behind a generic text.
func (r *resolver) message(err error) string {
	switch {
	case errors.Is(err, errAuthRequired),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, service.ErrNotFound):
		return err.Error()
	default:
		r.logger.Error("graphql mutation failed", zap.Error(err))
		return "internal server error"
	}
}

func intArg(p graphql.ResolveParams, name string) int {
	v, _ := p.Args[name].(int)
	return v
}

func int64Arg(p graphql.ResolveParams, name string) int64 {
	return int64(intArg(p, name))
}

func boolArg(p graphql.ResolveParams, name string) bool {
	v, _ := p.Args[name].(bool)
	return v
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func inputArg(p graphql.ResolveParams) map[string]interface{} {
	in, _ := p.Args["input"].(map[string]interface{})
	return in
}

func stringField(in map[string]interface{}, name string) string {
	v, _ := in[name].(string)
	return strings.TrimSpace(v)
}

func optStringField(in map[string]interface{}, name string) *string {
	v, ok := in[name].(string)
	if !ok {
		return nil
	}
	return &v
}

func optInt64Field(in map[string]interface{}, name string) *int64 {
	v, ok := in[name].(int)
	if !ok {
		return nil
	}
	id := int64(v)
	return &id
}

func boolField(in map[string]interface{}, name string) bool {
	v, _ := in[name].(bool)
	return v
}

func optBoolField(in map[string]interface{}, name string) *bool {
	v, ok := in[name].(bool)
	if !ok {
		return nil
	}
	return &v
}
