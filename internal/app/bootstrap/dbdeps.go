// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/runpro9ja/adminhub/internal/app/system/ratelimit"
	"github.com/runpro9ja/adminhub/internal/app/system/runapi"
	"github.com/runpro9ja/adminhub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backends the console talks to: its own MongoDB and the
// remote admin API.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	API   *runapi.Client
	Probe *workers.APIProbe

	// Background holds the limiters BuildHandler starts, so Shutdown can
	// stop their sweeps.
	Background *background
}

type background struct {
	login  *ratelimit.LoginLimiter
	public *ratelimit.Limiter
}

func (b *background) stop() {
	if b == nil {
		return
	}
	if b.login != nil {
		b.login.Stop()
	}
	if b.public != nil {
		b.public.Stop()
	}
}
