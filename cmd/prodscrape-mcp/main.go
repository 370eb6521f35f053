package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	apiURL := os.Getenv("PRODSCRAPE_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("PRODSCRAPE_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "PRODSCRAPE_API_KEY is required")
		os.Exit(1)
	}

	s := server.NewMCPServer(
		"prodscrape",
		"0.1.0",
		server.WithToolCapabilities(false),
	)

	scrapeProductTool := mcp.NewTool("scrape_product",
		mcp.WithDescription("Fetch a product page by its identifier (for Amazon, the ASIN) and return the extracted fields: title, photo URLs, brand, monthly sales, rating, review count, price, manufacturer and seller link. The raw page and record are also persisted by the server."),
		mcp.WithString("identifier",
			mcp.Required(),
			mcp.Description("Product identifier, e.g. B0B2JZXW8L"),
		),
	)
	s.AddTool(scrapeProductTool, handleScrapeProduct(newAPIClient(apiURL, apiKey)))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func handleScrapeProduct(client *apiClient) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("identifier")
		if err != nil || id == "" {
			return mcp.NewToolResultError("identifier is required"), nil
		}

		resp, err := client.Product(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if !resp.Success {
			msg := "scrape failed"
			if resp.Error != nil {
				msg = fmt.Sprintf("[%s] %s", resp.Error.Code, resp.Error.Message)
			}
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultText(formatProduct(resp)), nil
	}
}
