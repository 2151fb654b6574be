package insights

import "sort"

// catalogEntry binds an API field name to its output category.
type catalogEntry struct {
	name     string
	category FieldCategory
}

// scalarFields are carried as strings, including numeric-looking metrics:
// the API does not format numbers consistently.
var scalarFields = []string{
	"account_currency",
	"account_id",
	"account_name",
	"actions_per_impression",
	"activity_recency",
	"ad_bid_type",
	"ad_bid_value",
	"ad_delivery",
	"ad_format_asset",
	"ad_id",
	"ad_name",
	"adset_bid_type",
	"adset_bid_value",
	"adset_budget_type",
	"adset_budget_value",
	"adset_delivery",
	"adset_end",
	"adset_id",
	"adset_name",
	"adset_start",
	"age",
	"age_targeting",
	"app_store_clicks",
	"attention_events_per_impression",
	"attention_events_unq_per_reach",
	"auction_bid",
	"auction_competitiveness",
	"auction_max_competitor_bid",
	"buying_type",
	"call_to_action_clicks",
	"campaign_delivery",
	"campaign_end",
	"campaign_id",
	"campaign_name",
	"campaign_start",
	"canvas_avg_view_percent",
	"canvas_avg_view_time",
	"card_views",
	"clicks",
	"cost_per_dda_countby_convs",
	"cost_per_dwell",
	"cost_per_dwell_3_sec",
	"cost_per_dwell_5_sec",
	"cost_per_dwell_7_sec",
	"cost_per_estimated_ad_recallers",
	"cost_per_inline_link_click",
	"cost_per_inline_post_engagement",
	"cost_per_total_action",
	"cost_per_unique_click",
	"cost_per_unique_inline_link_click",
	"country",
	"cpc",
	"cpm",
	"cpp",
	"created_time",
	"creative_fingerprint",
	"ctr",
	"date_start",
	"date_stop",
	"dda_countby_convs",
	"deduping_1st_source_ratio",
	"deduping_2nd_source_ratio",
	"deduping_3rd_source_ratio",
	"deduping_ratio",
	"deeplink_clicks",
	"device_platform",
	"dma",
	"dwell_3_sec",
	"dwell_5_sec",
	"dwell_7_sec",
	"dwell_rate",
	"earned_impression",
	"estimated_ad_recall_rate",
	"estimated_ad_recall_rate_lower_bound",
	"estimated_ad_recall_rate_upper_bound",
	"estimated_ad_recallers",
	"estimated_ad_recallers_lower_bound",
	"estimated_ad_recallers_upper_bound",
	"frequency",
	"frequency_value",
	"full_view_impressions",
	"full_view_reach",
	"gender",
	"gender_targeting",
	"hourly_stats_aggregated_by_advertiser_time_zone",
	"hourly_stats_aggregated_by_audience_time_zone",
	"impression_device",
	"impressions",
	"impressions_auto_refresh",
	"impressions_gross",
	"inline_link_click_ctr",
	"inline_link_clicks",
	"inline_post_engagement",
	"instant_experience_clicks_to_open",
	"instant_experience_clicks_to_start",
	"instant_experience_outbound_clicks",
	"labels",
	"location",
	"newsfeed_avg_position",
	"newsfeed_clicks",
	"newsfeed_impressions",
	"objective",
	"optimization_goal",
	"performance_indicator",
	"place_page_id",
	"place_page_name",
	"placement",
	"platform_position",
	"product_id",
	"publisher_platform",
	"quality_score_ectr",
	"quality_score_ecvr",
	"quality_score_enfbr",
	"quality_score_organic",
	"reach",
	"region",
	"social_spend",
	"spend",
	"thumb_stops",
	"today_spend",
	"total_action_value",
	"total_actions",
	"total_unique_actions",
	"unique_clicks",
	"unique_ctr",
	"unique_impressions",
	"unique_inline_link_click_ctr",
	"unique_inline_link_clicks",
	"unique_link_clicks_ctr",
	"updated_time",
	"website_clicks",
	"wish_bid",
}

// singleActionFields hold one ActionStat object.
var singleActionFields = []string{
	"actions_results",
	"cost_per_action_result",
}

// multiActionFields hold an array of ActionStat objects, one per action
// type or breakdown slice.
var multiActionFields = []string{
	"action_values",
	"actions",
	"ad_click_actions",
	"ad_impression_actions",
	"amount_in_catalog_currency",
	"cancel_subscription_actions",
	"catalog_segment_actions",
	"catalog_segment_value_in_catalog_currency",
	"catalog_segment_value_mobile_purchase_roas",
	"catalog_segment_value_website_purchase_roas",
	"conditional_time_spent_ms_over_10s_actions",
	"conditional_time_spent_ms_over_15s_actions",
	"conditional_time_spent_ms_over_2s_actions",
	"conditional_time_spent_ms_over_3s_actions",
	"conditional_time_spent_ms_over_6s_actions",
	"contact_actions",
	"contact_value",
	"conversion_values",
	"conversions",
	"cost_per_10_sec_video_view",
	"cost_per_15_sec_video_view",
	"cost_per_2_sec_continuous_video_view",
	"cost_per_action_type",
	"cost_per_ad_click",
	"cost_per_completed_video_view",
	"cost_per_contact",
	"cost_per_conversion",
	"cost_per_customize_product",
	"cost_per_donate",
	"cost_per_find_location",
	"cost_per_one_thousand_ad_impression",
	"cost_per_outbound_click",
	"cost_per_schedule",
	"cost_per_start_trial",
	"cost_per_submit_application",
	"cost_per_subscribe",
	"cost_per_thruplay",
	"cost_per_unique_action_type",
	"cost_per_unique_conversion",
	"cost_per_unique_outbound_click",
	"customize_product_actions",
	"customize_product_value",
	"donate_actions",
	"donate_value",
	"find_location_actions",
	"find_location_value",
	"interactive_component_tap",
	"mobile_app_purchase_roas",
	"outbound_clicks",
	"outbound_clicks_ctr",
	"purchase_roas",
	"recurring_subscription_payment_actions",
	"schedule_actions",
	"schedule_value",
	"start_trial_actions",
	"start_trial_value",
	"submit_application_actions",
	"submit_application_value",
	"subscribe_actions",
	"subscribe_value",
	"unique_actions",
	"unique_conversions",
	"unique_outbound_clicks",
	"unique_outbound_clicks_ctr",
	"unique_video_continuous_2_sec_watched_actions",
	"unique_video_view_10_sec",
	"unique_video_view_15_sec",
	"video_10_sec_watched_actions",
	"video_15_sec_watched_actions",
	"video_30_sec_watched_actions",
	"video_avg_time_watched_actions",
	"video_complete_watched_actions",
	"video_completed_view_or_15s_passed_actions",
	"video_continuous_2_sec_watched_actions",
	"video_p100_watched_actions",
	"video_p25_watched_actions",
	"video_p50_watched_actions",
	"video_p75_watched_actions",
	"video_play_actions",
	"video_thruplay_watched_actions",
	"video_time_watched_actions",
	"website_ctr",
	"website_purchase_roas",
}

// fieldCatalog is the flattened, auditable classification table.
var fieldCatalog = buildCatalog()

// catalogIndex resolves names in constant time. Read-only after init.
var catalogIndex = indexCatalog(fieldCatalog)

func buildCatalog() []catalogEntry {
	entries := make([]catalogEntry, 0, len(scalarFields)+len(singleActionFields)+len(multiActionFields))
	for _, name := range scalarFields {
		entries = append(entries, catalogEntry{name: name, category: CategoryScalarString})
	}
	for _, name := range singleActionFields {
		entries = append(entries, catalogEntry{name: name, category: CategoryNestedRecord})
	}
	for _, name := range multiActionFields {
		entries = append(entries, catalogEntry{name: name, category: CategoryArrayOfNestedRecord})
	}
	return entries
}

func indexCatalog(entries []catalogEntry) map[string]FieldCategory {
	idx := make(map[string]FieldCategory, len(entries))
	for _, e := range entries {
		if prev, dup := idx[e.name]; dup && prev != e.category {
			panic("insights: field " + e.name + " classified twice")
		}
		idx[e.name] = e.category
	}
	return idx
}

// Classify resolves an API field name to its schema field.
// Names outside the catalog fail with *UnknownFieldError.
func Classify(name string) (SchemaField, error) {
	category, ok := catalogIndex[name]
	if !ok {
		return SchemaField{}, &UnknownFieldError{Name: name}
	}
	return SchemaField{Name: name, Category: category, Nullable: true}, nil
}

// IsClassifiable reports whether name is in the catalog.
func IsClassifiable(name string) bool {
	_, ok := catalogIndex[name]
	return ok
}

// CatalogNames returns the sorted names classified under category.
func CatalogNames(category FieldCategory) []string {
	var names []string
	for _, e := range fieldCatalog {
		if e.category == category {
			names = append(names, e.name)
		}
	}
	sort.Strings(names)
	return names
}
