package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database: min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Workflow.validate(); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}

	if c.Cache.DashboardSize <= 0 {
		return fmt.Errorf("cache: dashboard_size must be > 0 (got %d)", c.Cache.DashboardSize)
	}
	if c.Cache.DashboardTTL <= 0 {
		return fmt.Errorf("cache: dashboard_ttl must be > 0 (got %v)", c.Cache.DashboardTTL)
	}

	return nil
}

func (w *WorkflowConfig) validate() error {
	if w.ClaimTimeout <= 0 {
		return fmt.Errorf("claim_timeout must be > 0 (got %v)", w.ClaimTimeout)
	}
	if w.ReleaseInterval <= 0 {
		return fmt.Errorf("release_interval must be > 0 (got %v)", w.ReleaseInterval)
	}
	if w.ReleaseInterval > w.ClaimTimeout {
		return fmt.Errorf("release_interval (%v) must not exceed claim_timeout (%v)", w.ReleaseInterval, w.ClaimTimeout)
	}
	if w.MinCommentLength < 1 {
		return fmt.Errorf("min_comment_length must be >= 1 (got %d)", w.MinCommentLength)
	}
	if w.MinReferenceLength < 1 {
		return fmt.Errorf("min_reference_length must be >= 1 (got %d)", w.MinReferenceLength)
	}
	return nil
}
