package insights

// queryableFields are the insight fields accepted by the fields request
// parameter. Breakdown-generated fields and the action aggregates that the
// API returns only as a side effect of other fields are excluded.
var queryableFields = nameSet(
	"account_currency",
	"account_id",
	"account_name",
	"action_values",
	"ad_id",
	"ad_name",
	"adset_id",
	"adset_name",
	"app_store_clicks",
	"buying_type",
	"campaign_id",
	"campaign_name",
	"canvas_avg_view_percent",
	"canvas_avg_view_time",
	"clicks",
	"conversion_rate_ranking",
	"conversion_values",
	"conversions",
	"cost_per_10_sec_video_view",
	"cost_per_action_type",
	"cost_per_conversion",
	"cost_per_estimated_ad_recallers",
	"cost_per_inline_link_click",
	"cost_per_inline_post_engagement",
	"cost_per_outbound_click",
	"cost_per_thruplay",
	"cost_per_unique_action_type",
	"cost_per_unique_click",
	"cost_per_unique_inline_link_click",
	"cost_per_unique_outbound_click",
	"cpc",
	"cpm",
	"cpp",
	"ctr",
	"date_start",
	"date_stop",
	"deeplink_clicks",
	"engagement_rate_ranking",
	"estimated_ad_recall_rate",
	"estimated_ad_recallers",
	"frequency",
	"full_view_impressions",
	"full_view_reach",
	"impressions",
	"inline_link_click_ctr",
	"inline_link_clicks",
	"inline_post_engagement",
	"instant_experience_clicks_to_open",
	"instant_experience_clicks_to_start",
	"instant_experience_outbound_clicks",
	"mobile_app_purchase_roas",
	"newsfeed_avg_position",
	"newsfeed_clicks",
	"newsfeed_impressions",
	"objective",
	"outbound_clicks",
	"outbound_clicks_ctr",
	"purchase_roas",
	"quality_ranking",
	"reach",
	"relevance_score",
	"social_spend",
	"spend",
	"unique_actions",
	"unique_clicks",
	"unique_ctr",
	"unique_impressions",
	"unique_inline_link_click_ctr",
	"unique_inline_link_clicks",
	"unique_link_clicks_ctr",
	"unique_outbound_clicks",
	"unique_outbound_clicks_ctr",
	"video_10_sec_watched_actions",
	"video_30_sec_watched_actions",
	"video_avg_time_watched_actions",
	"video_complete_watched_actions",
	"video_p100_watched_actions",
	"video_p25_watched_actions",
	"video_p50_watched_actions",
	"video_p75_watched_actions",
	"video_play_actions",
	"video_play_curve_actions",
	"video_thruplay_watched_actions",
	"website_clicks",
	"website_ctr",
	"website_purchase_roas",
)

// queryableMetrics are the page and post metrics accepted by the metric
// request parameter.
var queryableMetrics = nameSet(
	"page_tab_views_login_top_unique",
	"page_tab_views_login_top",
	"page_tab_views_logout_top",
	"page_total_actions",
	"page_cta_clicks_logged_in_total",
	"page_cta_clicks_logged_in_unique",
	"page_cta_clicks_by_site_logged_in_unique",
	"page_cta_clicks_by_age_gender_logged_in_unique",
	"page_cta_clicks_logged_in_by_country_unique",
	"page_cta_clicks_logged_in_by_city_unique",
	"page_call_phone_clicks_logged_in_unique",
	"page_call_phone_clicks_by_age_gender_logged_in_unique",
	"page_call_phone_clicks_logged_in_by_country_unique",
	"page_call_phone_clicks_logged_in_by_city_unique",
	"page_call_phone_clicks_by_site_logged_in_unique",
	"page_get_directions_clicks_logged_in_unique",
	"page_get_directions_clicks_by_age_gender_logged_in_unique",
	"page_get_directions_clicks_logged_in_by_country_unique",
	"page_get_directions_clicks_logged_in_by_city_unique",
	"page_get_directions_clicks_by_site_logged_in_unique",
	"page_website_clicks_logged_in_unique",
	"page_website_clicks_by_age_gender_logged_in_unique",
	"page_website_clicks_logged_in_by_country_unique",
	"page_website_clicks_logged_in_by_city_unique",
	"page_website_clicks_by_site_logged_in_unique",
	"page_engaged_users",
	"page_post_engagements",
	"page_consumptions",
	"page_consumptions_unique",
	"page_consumptions_by_consumption_type",
	"page_consumptions_by_consumption_type_unique",
	"page_places_checkin_total",
	"page_places_checkin_total_unique",
	"page_places_checkin_mobile",
	"page_places_checkin_mobile_unique",
	"page_places_checkins_by_age_gender",
	"page_places_checkins_by_locale",
	"page_places_checkins_by_country",
	"page_negative_feedback",
	"page_negative_feedback_unique",
	"page_negative_feedback_by_type",
	"page_negative_feedback_by_type_unique",
	"page_positive_feedback_by_type",
	"page_positive_feedback_by_type_unique",
	"page_fans_online",
	"page_fans_online_per_day",
	"page_fan_adds_by_paid_non_paid_unique",
	"page_impressions",
	"page_impressions_unique",
	"page_impressions_paid",
	"page_impressions_paid_unique",
	"page_impressions_organic",
	"page_impressions_organic_unique",
	"page_impressions_viral",
	"page_impressions_viral_unique",
	"page_impressions_nonviral",
	"page_impressions_nonviral_unique",
	"page_impressions_by_story_type",
	"page_impressions_by_story_type_unique",
	"page_impressions_by_city_unique",
	"page_impressions_by_country_unique",
	"page_impressions_by_locale_unique",
	"page_impressions_by_age_gender_unique",
	"page_impressions_frequency_distribution",
	"page_impressions_viral_frequency_distribution",
	"page_posts_impressions",
	"page_posts_impressions_unique",
	"page_posts_impressions_paid",
	"page_posts_impressions_paid_unique",
	"page_posts_impressions_organic",
	"page_posts_impressions_organic_unique",
	"page_posts_served_impressions_organic_unique",
	"page_posts_impressions_viral",
	"page_posts_impressions_viral_unique",
	"page_posts_impressions_nonviral",
	"page_posts_impressions_nonviral_unique",
	"page_posts_impressions_frequency_distribution",
	"post_engaged_users",
	"post_negative_feedback",
	"post_negative_feedback_unique",
	"post_negative_feedback_by_type",
	"post_negative_feedback_by_type_unique",
	"post_engaged_fan",
	"post_clicks",
	"post_clicks_unique",
	"post_clicks_by_type",
	"post_clicks_by_type_unique",
	"post_impressions",
	"post_impressions_unique",
	"post_impressions_paid",
	"post_impressions_paid_unique",
	"post_impressions_fan",
	"post_impressions_fan_unique",
	"post_impressions_fan_paid",
	"post_impressions_fan_paid_unique",
	"post_impressions_organic",
	"post_impressions_organic_unique",
	"post_impressions_viral",
	"post_impressions_viral_unique",
	"post_impressions_nonviral",
	"post_impressions_nonviral_unique",
	"post_impressions_by_story_type",
	"post_impressions_by_story_type_unique",
	"post_reactions_like_total",
	"post_reactions_love_total",
	"post_reactions_wow_total",
	"post_reactions_haha_total",
	"post_reactions_sorry_total",
	"post_reactions_anger_total",
	"post_reactions_by_type_total",
	"page_actions_post_reactions_like_total",
	"page_actions_post_reactions_love_total",
	"page_actions_post_reactions_wow_total",
	"page_actions_post_reactions_haha_total",
	"page_actions_post_reactions_sorry_total",
	"page_actions_post_reactions_anger_total",
	"page_actions_post_reactions_total",
	"page_fans",
	"page_fans_locale",
	"page_fans_city",
	"page_fans_country",
	"page_fans_gender_age",
	"page_fan_adds",
	"page_fan_adds_unique",
	"page_fans_by_like_source",
	"page_fans_by_like_source_unique",
	"page_fan_removes",
	"page_fan_removes_unique",
	"page_fans_by_unlike_source_unique",
	"page_video_views",
	"page_video_views_paid",
	"page_video_views_organic",
	"page_video_views_by_paid_non_paid",
	"page_video_views_autoplayed",
	"page_video_views_click_to_play",
	"page_video_views_unique",
	"page_video_repeat_views",
	"page_video_complete_views_30s",
	"page_video_complete_views_30s_paid",
	"page_video_complete_views_30s_organic",
	"page_video_complete_views_30s_autoplayed",
	"page_video_complete_views_30s_click_to_play",
	"page_video_complete_views_30s_unique",
	"page_video_complete_views_30s_repeat_views",
	"post_video_complete_views_30s_autoplayed",
	"post_video_complete_views_30s_clicked_to_play",
	"post_video_complete_views_30s_organic",
	"post_video_complete_views_30s_paid",
	"post_video_complete_views_30s_unique",
	"page_video_views_10s",
	"page_video_views_10s_paid",
	"page_video_views_10s_organic",
	"page_video_views_10s_autoplayed",
	"page_video_views_10s_click_to_play",
	"page_video_views_10s_unique",
	"page_video_views_10s_repeat",
	"page_video_view_time",
	"page_views_total",
	"page_views_logout",
	"page_views_logged_in_total",
	"page_views_logged_in_unique",
	"page_views_external_referrals",
	"page_views_by_profile_tab_total",
	"page_views_by_profile_tab_logged_in_unique",
	"page_views_by_internal_referer_logged_in_unique",
	"page_views_by_site_logged_in_unique",
	"page_views_by_age_gender_logged_in_unique",
	"page_views_by_referers_logged_in_unique",
	"post_video_avg_time_watched",
	"post_video_complete_views_organic",
	"post_video_complete_views_organic_unique",
	"post_video_complete_views_paid",
	"post_video_complete_views_paid_unique",
	"post_video_retention_graph",
	"post_video_retention_graph_clicked_to_play",
	"post_video_retention_graph_autoplayed",
	"post_video_views_organic",
	"post_video_views_organic_unique",
	"post_video_views_paid",
	"post_video_views_paid_unique",
	"post_video_length",
	"post_video_views",
	"post_video_views_unique",
	"post_video_views_autoplayed",
	"post_video_views_clicked_to_play",
	"post_video_views_15s",
	"post_video_views_60s_excludes_shorter",
	"post_video_views_10s",
	"post_video_views_10s_unique",
	"post_video_views_10s_autoplayed",
	"post_video_views_10s_clicked_to_play",
	"post_video_views_10s_organic",
	"post_video_views_10s_paid",
	"post_video_views_10s_sound_on",
	"post_video_views_sound_on",
	"post_video_view_time",
	"post_video_view_time_organic",
	"post_video_view_time_by_age_bucket_and_gender",
	"post_video_view_time_by_region_id",
	"post_video_views_by_distribution_type",
	"post_video_view_time_by_distribution_type",
	"post_video_view_time_by_country_id",
	"page_content_activity_by_action_type_unique",
	"page_content_activity_by_age_gender_unique",
	"page_content_activity_by_city_unique",
	"page_content_activity_by_country_unique",
	"page_content_activity_by_locale_unique",
	"page_content_activity",
	"page_content_activity_by_action_type",
	"post_activity",
	"post_activity_unique",
	"post_activity_by_action_type",
	"post_activity_by_action_type_unique",
	"page_daily_video_ad_break_cpm_by_crosspost_status",
	"page_daily_video_ad_break_earnings_by_crosspost_status",
	"post_video_ad_break_ad_impressions",
	"post_video_ad_break_earnings",
	"post_video_ad_break_ad_cpm",
)

// IsQueryableField reports whether name may be sent in the fields parameter.
func IsQueryableField(name string) bool {
	_, ok := queryableFields[name]
	return ok
}

// IsQueryableMetric reports whether name may be sent in the metric parameter.
func IsQueryableMetric(name string) bool {
	_, ok := queryableMetrics[name]
	return ok
}

func nameSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
