// Package loader registers the HTTP features of the service.
//
// A feature owns a route group and knows whether it can run with the
// backends that were configured. The history feature, for example, reports
// itself disabled when no database is reachable.
//
//	mgr := loader.NewManager(logg)
//	mgr.Register(fulfillment.NewFeature(svc, recorder))
//	mgr.Register(history.NewFeature(historySvc))
//	if err := mgr.LoadAll(app); err != nil {
//	    logg.Fatal("Failed to load features", zap.Error(err))
//	}
//
// Features load in registration order and LoadAll stops at the first error.
package loader
