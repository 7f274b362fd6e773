package mgo

import (
	"context"
	"sync"

	mongoutil "github.com/Sourasish01/MERN-ChatApp/data/database/mgo/mongoutil"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// Package-level manager: one MongoDB client per process.
type manager struct {
	mu     sync.RWMutex
	client *mongoutil.Client
}

var globalMgr manager

// Start connects the global client. Call once during startup, before any
// store is used.
func Start(ctx context.Context, cfg *mongoutil.Config) error {
	cli, err := mongoutil.NewMongoDB(ctx, cfg)
	if err != nil {
		return err
	}
	globalMgr.mu.Lock()
	globalMgr.client = cli
	globalMgr.mu.Unlock()
	return nil
}

// GetDB returns the connected database handle.
func GetDB() (*mongo.Database, error) {
	globalMgr.mu.RLock()
	defer globalMgr.mu.RUnlock()
	if globalMgr.client == nil {
		return nil, errors.New("mongo not started")
	}
	return globalMgr.client.GetDB(), nil
}

// Stop disconnects the global client.
func Stop(ctx context.Context) error {
	globalMgr.mu.Lock()
	defer globalMgr.mu.Unlock()
	if globalMgr.client == nil {
		return nil
	}
	err := globalMgr.client.Disconnect(ctx)
	globalMgr.client = nil
	return err
}
