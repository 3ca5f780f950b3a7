package gql

import (
	"time"

	"github.com/GunarsK-portfolio/content-service/internal/models"
	"github.com/graphql-go/graphql"
)

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"email":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"username":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"firstName":  &graphql.Field{Type: graphql.String},
		"lastName":   &graphql.Field{Type: graphql.String},
		"fullName":   &graphql.Field{Type: graphql.String},
		"bio":        &graphql.Field{Type: graphql.String},
		"avatar":     &graphql.Field{Type: graphql.String},
		"isVerified": &graphql.Field{Type: graphql.Boolean},
		"isActive":   &graphql.Field{Type: graphql.Boolean},
		"isStaff":    &graphql.Field{Type: graphql.Boolean},
		"createdAt":  &graphql.Field{Type: graphql.DateTime},
		"updatedAt":  &graphql.Field{Type: graphql.DateTime},
	},
})

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"slug":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"description": &graphql.Field{Type: graphql.String},
		"createdAt":   &graphql.Field{Type: graphql.DateTime},
		"updatedAt":   &graphql.Field{Type: graphql.DateTime},
	},
})

var aboutType = graphql.NewObject(graphql.ObjectConfig{
	Name: "About",
	Fields: graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"aboutId":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{Type: graphql.DateTime},
	},
})

// newEntryType builds the object type shared by Post and Sample.
func newEntryType(name string) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"slug":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"excerpt":     &graphql.Field{Type: graphql.String},
			"authorId":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"author":      &graphql.Field{Type: userType},
			"categoryId":  &graphql.Field{Type: graphql.Int},
			"category":    &graphql.Field{Type: categoryType},
			"isPublished": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"publishedAt": &graphql.Field{Type: graphql.DateTime},
			"viewsCount":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"likesCount":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"createdAt":   &graphql.Field{Type: graphql.DateTime},
			"updatedAt":   &graphql.Field{Type: graphql.DateTime},
		},
	})
}

// newEntryInputs builds the create and update input types for an entry kind.
func newEntryInputs(name string) (create, update *graphql.InputObject) {
	create = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: name + "Input",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"slug":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"content":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"excerpt":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"categoryId":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"isPublished": &graphql.InputObjectFieldConfig{Type: graphql.Boolean, DefaultValue: false},
		},
	})
	update = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: name + "UpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"slug":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"content":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"excerpt":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"categoryId":    &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"clearCategory": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
			"isPublished":   &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})
	return create, update
}

var categoryInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CategoryInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"slug":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// newPayload wraps a mutation result as {result, success, message}.
func newPayload(name string, result graphql.Output) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name + "Payload",
		Fields: graphql.Fields{
			"result":  &graphql.Field{Type: result},
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.String},
		},
	})
}

// The helpers below flatten models into maps for the default resolver.
// They return an untyped nil for missing rows so the field resolves to null.

func userValue(u *models.User) interface{} {
	if u == nil {
		return nil
	}
	return map[string]interface{}{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"firstName":  u.FirstName,
		"lastName":   u.LastName,
		"fullName":   u.FullName(),
		"bio":        optString(u.Bio),
		"avatar":     optString(u.Avatar),
		"isVerified": u.IsVerified,
		"isActive":   u.IsActive,
		"isStaff":    u.IsStaff,
		"createdAt":  u.CreatedAt,
		"updatedAt":  u.UpdatedAt,
	}
}

func categoryValue(c *models.Category) interface{} {
	if c == nil {
		return nil
	}
	return map[string]interface{}{
		"id":          c.ID,
		"name":        c.Name,
		"slug":        c.Slug,
		"description": optString(c.Description),
		"createdAt":   c.CreatedAt,
		"updatedAt":   c.UpdatedAt,
	}
}

func aboutValue(a *models.About) interface{} {
	if a == nil {
		return nil
	}
	return map[string]interface{}{
		"id":        a.ID,
		"aboutId":   a.AboutID,
		"createdAt": a.CreatedAt,
		"updatedAt": a.UpdatedAt,
	}
}

func entryValue[T any, PT models.EntryModel[T]](item *T) interface{} {
	if item == nil {
		return nil
	}
	e := PT(item).GetEntry()
	author, category := PT(item).Relations()

	var categoryID interface{}
	if e.CategoryID != nil {
		categoryID = *e.CategoryID
	}

	return map[string]interface{}{
		"id":          e.ID,
		"title":       e.Title,
		"slug":        e.Slug,
		"content":     e.Content,
		"excerpt":     optString(e.Excerpt),
		"authorId":    e.AuthorID,
		"author":      userValue(author),
		"categoryId":  categoryID,
		"category":    categoryValue(category),
		"isPublished": e.IsPublished,
		"publishedAt": optTime(e.PublishedAt),
		"viewsCount":  e.ViewsCount,
		"likesCount":  e.LikesCount,
		"createdAt":   e.CreatedAt,
		"updatedAt":   e.UpdatedAt,
	}
}

func listValue[T any](items []T, convert func(*T) interface{}) []interface{} {
	out := make([]interface{}, 0, len(items))
	for i := range items {
		out = append(out, convert(&items[i]))
	}
	return out
}

func optString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func optTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
