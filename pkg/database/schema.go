package database

// Schema is applied by cmd/seed before seeding. Statuses and roles are
// checked again at the data layer so nothing outside the closed sets can be
// persisted even by hand-written SQL.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    uid UUID PRIMARY KEY,
    username VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL UNIQUE,
    phone_number VARCHAR(20) NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL DEFAULT '',
    user_role VARCHAR(20) NOT NULL CHECK (user_role IN ('client', 'intervenant', 'admin')),
    verified BOOLEAN NOT NULL DEFAULT FALSE,
    banned BOOLEAN NOT NULL DEFAULT FALSE,
    otp VARCHAR(10) NOT NULL DEFAULT '',
    metier VARCHAR(50) NOT NULL DEFAULT '',
    city VARCHAR(100) NOT NULL DEFAULT '',
    rating DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(uid),
    token TEXT NOT NULL UNIQUE,
    expires_at TIMESTAMPTZ,
    revoked BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS metiers (
    id UUID PRIMARY KEY,
    name VARCHAR(50) NOT NULL UNIQUE,
    label VARCHAR(100) NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
    id UUID PRIMARY KEY,
    metier_id UUID NOT NULL REFERENCES metiers(id),
    name VARCHAR(100) NOT NULL,
    label VARCHAR(150) NOT NULL,
    UNIQUE (metier_id, name)
);

CREATE TABLE IF NOT EXISTS sous_services (
    id UUID PRIMARY KEY,
    category_id UUID NOT NULL REFERENCES categories(id),
    name VARCHAR(100) NOT NULL,
    label VARCHAR(150) NOT NULL,
    UNIQUE (category_id, name)
);

CREATE TABLE IF NOT EXISTS services (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(uid),
    metier VARCHAR(50) NOT NULL,
    sous_service_id UUID NOT NULL REFERENCES sous_services(id),
    title VARCHAR(255) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    address VARCHAR(255) NOT NULL,
    city VARCHAR(100) NOT NULL,
    latitude DOUBLE PRECISION NOT NULL,
    longitude DOUBLE PRECISION NOT NULL,
    price DOUBLE PRECISION NOT NULL,
    price_unit VARCHAR(20) NOT NULL,
    days TEXT[] NOT NULL DEFAULT '{}',
    active BOOLEAN NOT NULL DEFAULT TRUE,
    archived BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS service_options (
    id UUID PRIMARY KEY,
    service_id UUID NOT NULL REFERENCES services(id),
    option_group VARCHAR(50) NOT NULL,
    name VARCHAR(50) NOT NULL,
    enabled BOOLEAN NOT NULL DEFAULT FALSE,
    price DOUBLE PRECISION NOT NULL DEFAULT 0,
    unit VARCHAR(20) NOT NULL DEFAULT '',
    UNIQUE (service_id, option_group, name)
);

CREATE TABLE IF NOT EXISTS disponibilites (
    id UUID PRIMARY KEY,
    service_id UUID NOT NULL REFERENCES services(id),
    kind VARCHAR(10) NOT NULL CHECK (kind IN ('semaine', 'date')),
    day VARCHAR(10) NOT NULL DEFAULT '',
    date DATE,
    start_time VARCHAR(5) NOT NULL,
    end_time VARCHAR(5) NOT NULL
);

CREATE TABLE IF NOT EXISTS demandes (
    id UUID PRIMARY KEY,
    client_id UUID NOT NULL REFERENCES users(uid),
    service_id UUID NOT NULL REFERENCES services(id),
    description TEXT NOT NULL DEFAULT '',
    categories TEXT[] NOT NULL DEFAULT '{}',
    date_souhaitee DATE,
    address VARCHAR(255) NOT NULL,
    city VARCHAR(100) NOT NULL,
    proposed_price DOUBLE PRECISION NOT NULL DEFAULT 0,
    statut VARCHAR(20) NOT NULL DEFAULT 'en_attente'
        CHECK (statut IN ('en_attente', 'en_discussion', 'accepte', 'refuse', 'termine')),
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
    id UUID PRIMARY KEY,
    demande_id UUID NOT NULL REFERENCES demandes(id),
    author_id UUID NOT NULL REFERENCES users(uid),
    target_id UUID NOT NULL REFERENCES users(uid),
    direction VARCHAR(30) NOT NULL,
    ponctualite INT NOT NULL CHECK (ponctualite BETWEEN 1 AND 5),
    proprete INT NOT NULL CHECK (proprete BETWEEN 1 AND 5),
    qualite INT NOT NULL CHECK (qualite BETWEEN 1 AND 5),
    note DOUBLE PRECISION NOT NULL,
    comment TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL,
    UNIQUE (demande_id, direction)
);

CREATE TABLE IF NOT EXISTS reclamations (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(uid),
    demande_id UUID REFERENCES demandes(id),
    subject VARCHAR(255) NOT NULL,
    message TEXT NOT NULL,
    statut VARCHAR(20) NOT NULL DEFAULT 'pending'
        CHECK (statut IN ('pending', 'in_progress', 'resolved', 'closed')),
    admin_response TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS justificatifs (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES users(uid),
    doc_type VARCHAR(50) NOT NULL,
    file_path TEXT NOT NULL,
    file_name VARCHAR(255) NOT NULL,
    statut VARCHAR(20) NOT NULL DEFAULT 'en_attente'
        CHECK (statut IN ('en_attente', 'valide', 'rejete')),
    admin_comment TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_services_city ON services(city);
CREATE INDEX IF NOT EXISTS idx_services_metier ON services(metier);
CREATE INDEX IF NOT EXISTS idx_demandes_client ON demandes(client_id);
CREATE INDEX IF NOT EXISTS idx_demandes_service ON demandes(service_id);
CREATE INDEX IF NOT EXISTS idx_reviews_target ON reviews(target_id);
`

// ApplySchema creates all tables if they do not exist yet.
func ApplySchema() error {
	_, err := DB.Exec(Schema)
	return err
}
