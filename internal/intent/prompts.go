package intent

// parseOutingPrompt asks the model for an outing request as strict JSON.
const parseOutingPrompt = `You extract outing plans from short descriptions for a city itinerary planner.
Convert the user's text into a single JSON object.

Fields (omit any field the text does not mention):
- budget: total budget for the whole party as a number (e.g. 150)
- currency: ISO 4217 code, uppercase (e.g. "EUR", "USD")
- start_time: "HH:MM" 24-hour clock (e.g. "18:30")
- end_time: "HH:MM" 24-hour clock; may be after midnight (e.g. "01:00")
- city: city name as written by the user
- party_size: number of people (1 to 20)
- vibes: array of short mood words (e.g. ["romantic", "lively"])
- likes: array of specific interests (e.g. ["jazz", "seafood"])
- dietary: array of dietary needs (e.g. ["vegetarian"])
- alcohol_ok: false only if the user avoids alcohol
- family_friendly: true if children are coming
- walking: "low", "medium" or "high"
- indoors_preferred: true if the user wants to stay inside
- confidence: number 0 to 1 (how sure you are about the extraction)

RULES:
1. Never guess a city, budget or time that the text does not state
2. "dinner and drinks for two" means party_size 2
3. Convert "7pm" to "19:00" and "midnight" to "00:00"
4. Use strict JSON numeric literals (e.g., 0.85, never .85)
5. Output ONLY the JSON object, no markdown, no explanation`
