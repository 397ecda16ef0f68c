package chrome

// overlayScript is injected once per attachment. It renders the overlay
// panel, installs the capture-phase click recorder, and exposes the small
// API the Go side polls. The recorder resolves DOM containment facts
// (closest-match against the registered selectors, refresh containment) at
// event time so that Go receives stable facts about a target that may be
// re-rendered away before the next poll.
//
// %s placeholders, in order: JSON array of marker selectors the filter
// queries, JSON string of the refresh-control selector list.
const overlayScript = `(() => {
  if (window.__bridgectl) { return; }
  const markers = %s;
  const refreshSelector = %s;

  const state = { queue: [] };
  window.__bridgectl = state;

  const findRefresh = () => {
    const panel = document.getElementById('bridgectl-panel');
    for (const el of document.querySelectorAll(refreshSelector)) {
      if (!panel || !panel.contains(el)) { return el; }
    }
    return null;
  };

  document.addEventListener('click', (e) => {
    const t = e.target;
    const matched = [];
    for (const sel of markers) {
      try { if (t.closest && t.closest(sel)) { matched.push(sel); } } catch (err) {}
    }
    const refresh = findRefresh();
    state.queue.push({
      trusted: !!e.isTrusted,
      matched: matched,
      inRefresh: !!(refresh && (refresh === t || refresh.contains(t))),
    });
  }, true);

  state.drain = () => state.queue.splice(0, state.queue.length);

  state.selection = () => {
    // Known globals exposed by the weditor / UIAutodev inspector family.
    const node = window.currentNodeInfo || window.selectedNode ||
      (window.vm && window.vm.currentNode) || null;
    if (!node) { return null; }
    const attrs = node.attributes || node.attrs || node;
    const out = { rectangle: '', elementPath: '', node: {} };
    out.rectangle = String(attrs.bounds || node.bounds || '');
    out.elementPath = String(node.xpath || attrs.xpath || '');
    for (const k of ['text', 'class', 'resource-id', 'content-desc', 'package', 'bounds']) {
      if (attrs[k] !== undefined && attrs[k] !== null) { out.node[k] = String(attrs[k]); }
    }
    return out;
  };

  state.regionText = (sel) => {
    try {
      const el = document.querySelector(sel);
      return el ? (el.innerText || el.textContent || '') : null;
    } catch (err) { return null; }
  };

  state.hasRefresh = () => !!findRefresh();
  state.clickRefresh = () => {
    const el = findRefresh();
    if (!el) { return false; }
    el.click();
    return true;
  };

  const row = (name, label, input) =>
    '<div class="bridgectl-row" id="bridgectl-row-' + name + '">' +
    '<label>' + label + '</label>' + input + '</div>';
  const text = (name, value) =>
    '<input id="bridgectl-field-' + name + '" value="' + value + '">';
  const sel = (name, opts, value) =>
    '<select id="bridgectl-field-' + name + '">' +
    opts.map(o => '<option' + (o === value ? ' selected' : '') + '>' + o + '</option>').join('') +
    '</select>';

  const panel = document.createElement('div');
  panel.id = 'bridgectl-panel';
  panel.setAttribute('data-bridgectl-ignore', '');
  panel.style.cssText = 'position:fixed;right:8px;bottom:8px;z-index:99999;' +
    'background:#fff;border:1px solid #888;padding:8px;font:12px sans-serif;' +
    'max-width:260px;box-shadow:0 2px 8px rgba(0,0,0,.25)';
  panel.innerHTML =
    row('action', 'action', sel('action', ['tap', 'long_press', 'input', 'swipe', 'back'], 'tap')) +
    row('rectangle', 'bounds', text('rectangle', '')) +
    row('element-path', 'xpath', text('element-path', '')) +
    row('text', 'text', text('text', '')) +
    row('duration-ms', 'duration', text('duration-ms', '800')) +
    row('dx', 'dx', text('dx', '0')) +
    row('dy', 'dy', text('dy', '0')) +
    row('direction', 'direction', sel('direction', ['custom', 'up', 'down', 'left', 'right'], 'custom')) +
    row('distance', 'distance', text('distance', '0')) +
    row('capture-mode', 'capture', sel('capture-mode', ['post', 'mid'], 'post')) +
    row('mid-delay-ms', 'mid delay', text('mid-delay-ms', '50')) +
    row('wait-after-ms', 'wait after', text('wait-after-ms', '400')) +
    row('auto-send', 'auto send',
      '<input type="checkbox" id="bridgectl-field-auto-send" checked>') +
    '<div id="bridgectl-status">ready</div>';
  document.body.appendChild(panel);

  state.fields = () => {
    const out = {};
    for (const el of panel.querySelectorAll('[id^="bridgectl-field-"]')) {
      const name = el.id.slice('bridgectl-field-'.length);
      out[name] = el.type === 'checkbox' ? (el.checked ? 'true' : 'false') : String(el.value);
    }
    return out;
  };
  state.setField = (name, v) => {
    const el = document.getElementById('bridgectl-field-' + name);
    if (!el) { return false; }
    if (el.type === 'checkbox') { el.checked = v === 'true'; } else { el.value = v; }
    return true;
  };
  state.applyVis = (vis) => {
    for (const name in vis) {
      const el = document.getElementById('bridgectl-row-' + name);
      if (el) { el.style.display = vis[name] ? '' : 'none'; }
    }
  };
  state.setStatus = (t) => {
    const el = document.getElementById('bridgectl-status');
    if (el) { el.textContent = t; }
  };
})();`
