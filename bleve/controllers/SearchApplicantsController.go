package controllers

import (
	"voter-registration-backend/bleve/models"

	"github.com/gofiber/fiber/v2"
)

func (c *SearchController) SearchApplicantsController(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	votingStatus := ctx.Query("voting_status")

	results, err := c.repo.SearchApplicants(query, votingStatus)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}

	response := models.SearchResponse{Hits: make([]models.SearchHit, 0, len(results.Hits))}
	for _, hit := range results.Hits {
		searchHit := models.SearchHit{ID: hit.ID}
		if doc, err := c.repo.GetApplicantDocument(hit.ID); err == nil {
			if fields, ok := doc.(map[string]interface{}); ok {
				searchHit.Fields = fields
			}
		}
		response.Hits = append(response.Hits, searchHit)
	}

	return ctx.JSON(fiber.Map{
		"results": response,
		"total":   results.Total,
	})
}
