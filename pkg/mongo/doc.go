// Package mongo connects to MongoDB with retries and exposes a readiness
// check for the connected client.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
package mongo
