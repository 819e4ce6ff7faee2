package openai

const extractionSystemPrompt = `Extract structured ingredient data from meal descriptions. Always respond with valid JSON format.`

const textExtractionPrompt = `Extract ingredients and portions from this meal description and format as JSON.

Meal: %s

For each ingredient, estimate the portion size. Format as:
{
    "items": [
        {"name": "ingredient", "quantity": 100, "unit": "g", "preparation": "method"},
        {"name": "ingredient2", "quantity": 1, "unit": "cup", "preparation": "method"}
    ],
    "meal_description": "brief summary"
}

Common units: g, oz, cup, tbsp, tsp, slice, medium, small, large`

const imageDetectionPrompt = `Analyze this food image and extract:

1. Food Items: List each food item with estimated portion (e.g., "150g chicken breast", "1 cup broccoli", "2 tbsp olive oil")
2. Preparation: Note if grilled, fried, roasted, raw, etc.

Format as JSON:
{
    "items": [
        {"name": "chicken breast", "quantity": 150, "unit": "g", "preparation": "grilled"},
        {"name": "broccoli", "quantity": 1, "unit": "cup", "preparation": "roasted"}
    ],
    "meal_description": "brief description of the meal"
}`

const adviceSystemPrompt = `You are a nutrition expert. Provide evidence-based analysis using the provided nutritional data. Format your response as clear paragraphs.`

const advicePrompt = `Based on this meal analysis, provide comprehensive health guidance:

Meal: %s
Nutrition Summary:
- Calories: %.1f cal
- Protein: %.1fg
- Carbs: %.1fg
- Fat: %.1fg
- Fiber: %.1fg
- Sodium: %.1fmg
- Sugar: %.1fg

User Profile:
%s

Provide a comprehensive analysis including:
1. Your Meal: Description of the food items
2. Nutrition Analysis: Interpretation of the values
3. Health Rating: Rate this meal 1-10 for overall healthiness
4. Personalized Recommendations: Tips specific to their health goal and conditions

Format as readable paragraphs with a clear "Health Rating: X/10" line.`
