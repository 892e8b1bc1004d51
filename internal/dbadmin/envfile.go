package dbadmin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnvTemplate is a file written by WriteEnvFiles.
type EnvTemplate struct {
	Name    string
	Content string
}

// EnvTemplates are the development and production environment files.
var EnvTemplates = []EnvTemplate{
	{Name: ".env", Content: developmentEnv},
	{Name: ".env.prod", Content: productionEnv},
}

const developmentEnv = `# Local development environment
APP_ENV=development
PORT=3000

# Database
DB_HOST=postgres
DB_PORT=5432
DB_NAME=myapp
DB_USER=myapp_user
DB_PASSWORD=password
DB_SSLMODE=disable

# Redis
REDIS_ENABLED=true
REDIS_HOST=redis
REDIS_PORT=6379
REDIS_PASSWORD=password

# Logging
LOG_LEVEL=debug
LOG_FORMAT=text

# Application
APP_NAME=github-actions-demo
APP_VERSION=2.0.0
`

const productionEnv = `# Production environment. Replace the placeholder secrets.
APP_ENV=production
PORT=3000

# Database
DB_HOST=postgres
DB_PORT=5432
DB_NAME=myapp
DB_USER=myapp_user
DB_PASSWORD=your_secure_db_password_here
DB_SSLMODE=disable

# Redis
REDIS_ENABLED=true
REDIS_HOST=redis
REDIS_PORT=6379
REDIS_PASSWORD=your_secure_redis_password_here

# Logging
LOG_LEVEL=info
LOG_FORMAT=json

# Application
APP_NAME=github-actions-demo
APP_VERSION=2.0.0
`

// EnvFileResult reports what happened to one template.
type EnvFileResult struct {
	Path    string
	Written bool
}

// WriteEnvFiles writes every template into dir. Existing files are left
// alone unless force is set.
func WriteEnvFiles(dir string, force bool) ([]EnvFileResult, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	results := make([]EnvFileResult, 0, len(EnvTemplates))
	for _, tmpl := range EnvTemplates {
		path := filepath.Join(dir, tmpl.Name)

		if !force {
			_, err := os.Stat(path)
			if err == nil {
				results = append(results, EnvFileResult{Path: path})
				continue
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return results, fmt.Errorf("stat %s: %w", path, err)
			}
		}

		if err := os.WriteFile(path, []byte(tmpl.Content), 0o600); err != nil {
			return results, fmt.Errorf("write %s: %w", path, err)
		}
		results = append(results, EnvFileResult{Path: path, Written: true})
	}

	return results, nil
}
