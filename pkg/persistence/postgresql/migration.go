package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE platform_config (
				id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
				document JSONB NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE auth_providers (
				id UUID PRIMARY KEY,
				provider_type VARCHAR(50) NOT NULL CHECK (provider_type IN ('oidc', 'ldap', 'saml')),
				name JSONB NOT NULL,
				description JSONB,
				config JSONB,
				enabled BOOLEAN NOT NULL DEFAULT false,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_auth_providers_enabled ON auth_providers(enabled);

			CREATE TABLE oauth_clients (
				id VARCHAR(255) PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				secret_hash VARCHAR(255) NOT NULL,
				active BOOLEAN NOT NULL DEFAULT true,
				grant_types JSONB NOT NULL,
				redirect_uris JSONB,
				scopes JSONB,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE sources (
				id UUID PRIMARY KEY,
				source_type VARCHAR(50) NOT NULL CHECK (source_type IN ('filesystem', 'url', 'ifinder', 'page')),
				name JSONB NOT NULL,
				description JSONB,
				config JSONB,
				enabled BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_sources_type ON sources(source_type);

			CREATE TABLE workflows (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				description TEXT,
				steps JSONB,
				variables JSONB,
				enabled BOOLEAN NOT NULL DEFAULT true,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE workflow_executions (
				id UUID PRIMARY KEY,
				workflow_id UUID NOT NULL,
				status VARCHAR(50) NOT NULL CHECK (status IN ('pending', 'running', 'paused', 'completed', 'failed', 'cancelled')),
				current_step VARCHAR(255),
				error TEXT,
				started_at TIMESTAMP WITH TIME ZONE NOT NULL,
				finished_at TIMESTAMP WITH TIME ZONE,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_executions_workflow ON workflow_executions(workflow_id);
			CREATE INDEX idx_executions_status ON workflow_executions(status);
			CREATE INDEX idx_executions_started_at ON workflow_executions(started_at);

			CREATE TABLE skills (
				id VARCHAR(255) PRIMARY KEY,
				name JSONB NOT NULL,
				description JSONB,
				version VARCHAR(50) NOT NULL,
				author VARCHAR(255),
				installed_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE short_links (
				code VARCHAR(64) PRIMARY KEY,
				target TEXT NOT NULL,
				created_by VARCHAR(255),
				hits BIGINT NOT NULL DEFAULT 0,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);
		`,
	}
}
