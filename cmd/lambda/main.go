// Package main runs the shipping gateway on AWS Lambda behind an API Gateway HTTP API.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/thcfit/shipping-gateway/config"
	"github.com/thcfit/shipping-gateway/internal/app"
)

func main() {
	cfg := config.Load()

	gateway := app.InitializeApp(context.Background(), cfg)
	lambda.Start(app.NewLambdaHandler(gateway.Router).Handle)
}
