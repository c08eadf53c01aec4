package elastic

import (
	"bytes"
	"context"
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"
)

const (
	IdxProfiles   = "profiles_v1"
	IdxHackathons = "hackathons_v1"
	IdxProjects   = "projects_v1"
)

func EnsureIndexes(ctx context.Context, c *es.Client) error {
	mapping := `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
		"username":{"type":"keyword"},"full_name":{"type":"text"},"bio":{"type":"text"},
		"claimed":{"type":"boolean"},"total_score":{"type":"integer"},"updated_at":{"type":"date"}
	}}}`
	if err := ensure(ctx, c, IdxProfiles, mapping); err != nil {
		return err
	}

	mapping = `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
		"slug":{"type":"keyword"},"title":{"type":"text"},"location":{"type":"keyword"},
		"is_online":{"type":"boolean"},"start_date":{"type":"date"},"end_date":{"type":"date"},
		"updated_at":{"type":"date"}
	}}}`
	if err := ensure(ctx, c, IdxHackathons, mapping); err != nil {
		return err
	}

	mapping = `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
		"slug":{"type":"keyword"},"title":{"type":"text"},"description":{"type":"text"},
		"creator_id":{"type":"keyword"},"hackathon_id":{"type":"keyword"},"bounty_id":{"type":"keyword"},
		"vote_count":{"type":"integer"},"updated_at":{"type":"date"}
	}}}`
	return ensure(ctx, c, IdxProjects, mapping)
}

func ensure(ctx context.Context, c *es.Client, index, body string) error {
	exists, err := c.Indices.Exists([]string{index})
	if err == nil && exists.StatusCode == 200 {
		return nil
	}
	_, err = c.Indices.Create(index, c.Indices.Create.WithBody(bytes.NewBufferString(body)), c.Indices.Create.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	return nil
}
